package domain

type Hotel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`  // nightly
	Rating      float64  `json:"rating"` // 0..5
	Images      []string `json:"images"`
	Amenities   []string `json:"amenities"`
	Rooms       []string `json:"rooms"` // room IDs owned by this hotel
}

type Room struct {
	ID          string   `json:"id"`
	HotelID     string   `json:"hotelId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Capacity    int      `json:"capacity"`
	Available   bool     `json:"available"`
	Images      []string `json:"images"`
}

// Catalog is the full static data set a repository is built from.
type Catalog struct {
	Hotels []Hotel
	Rooms  []Room // insertion order
}
