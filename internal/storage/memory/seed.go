package memory

import "checkin_syria/internal/domain"

func pexels(id string) string {
	return "https://images.pexels.com/photos/" + id + "/pexels-photo-" + id + ".jpeg"
}

// SeedCatalog returns the built-in catalog: four hotels, three rooms each.
func SeedCatalog() domain.Catalog {
	return domain.Catalog{
		Hotels: []domain.Hotel{
			{
				ID:          "1",
				Name:        "Beit Al-Wali Heritage Hotel",
				Description: "A beautifully restored 18th-century mansion featuring traditional Syrian architecture with a central courtyard and fountain. Each room is uniquely decorated with antique furniture and handcrafted Syrian textiles.",
				Location:    "Old Damascus, Syria",
				Price:       120,
				Rating:      4.8,
				Images:      []string{pexels("338504"), pexels("261102"), pexels("271624")},
				Amenities:   []string{"Free WiFi", "Air Conditioning", "Restaurant", "Room Service", "24-Hour Front Desk"},
				Rooms:       []string{"1", "2", "3"},
			},
			{
				ID:          "2",
				Name:        "Aleppo Grand Hotel",
				Description: "Located in the heart of Aleppo's rebuilt district, this luxury hotel combines modern comfort with elements of traditional Syrian design. Enjoy panoramic views of the ancient citadel from our rooftop restaurant.",
				Location:    "Central Aleppo, Syria",
				Price:       150,
				Rating:      4.6,
				Images:      []string{pexels("2096983"), pexels("2029719"), pexels("262047")},
				Amenities:   []string{"Swimming Pool", "Spa", "Free WiFi", "Premium Breakfast", "Fitness Center"},
				Rooms:       []string{"4", "5", "6"},
			},
			{
				ID:          "3",
				Name:        "Palmyra Desert Resort",
				Description: "Experience the magic of the Syrian desert at our eco-friendly resort near the historic site of Palmyra. Our traditional desert-style accommodations offer comfort with minimal environmental impact.",
				Location:    "Palmyra Region, Syria",
				Price:       180,
				Rating:      4.9,
				Images:      []string{pexels("258154"), pexels("189296"), pexels("271643")},
				Amenities:   []string{"Desert Tours", "Traditional Cuisine", "Cultural Activities", "Star Gazing", "Free Parking"},
				Rooms:       []string{"7", "8", "9"},
			},
			{
				ID:          "4",
				Name:        "Latakia Beachfront Hotel",
				Description: "Our Mediterranean-inspired hotel offers direct access to the beautiful beaches of Latakia. Enjoy sea views, fresh seafood, and all the amenities you need for a perfect coastal vacation.",
				Location:    "Latakia Coast, Syria",
				Price:       135,
				Rating:      4.5,
				Images:      []string{pexels("260922"), pexels("2869215"), pexels("2598638")},
				Amenities:   []string{"Private Beach", "Water Sports", "Seaside Restaurant", "Free WiFi", "Airport Shuttle"},
				Rooms:       []string{"10", "11", "12"},
			},
		},
		Rooms: []domain.Room{
			{ID: "1", HotelID: "1", Name: "Heritage Suite", Description: "Spacious suite with traditional Syrian decor, featuring a king-sized bed and sitting area.", Price: 120, Capacity: 2, Available: true, Images: []string{pexels("271624")}},
			{ID: "2", HotelID: "1", Name: "Courtyard Room", Description: "Charming room overlooking the central courtyard with handcrafted furniture and a queen bed.", Price: 90, Capacity: 2, Available: true, Images: []string{pexels("271619")}},
			{ID: "3", HotelID: "1", Name: "Family Room", Description: "Spacious room with one king bed and two single beds, perfect for families.", Price: 150, Capacity: 4, Available: false, Images: []string{pexels("210265")}},
			{ID: "4", HotelID: "2", Name: "Citadel View Suite", Description: "Luxury suite with panoramic views of Aleppo Citadel, featuring a king-sized bed and premium amenities.", Price: 180, Capacity: 2, Available: true, Images: []string{pexels("262048")}},
			{ID: "5", HotelID: "2", Name: "Deluxe Double Room", Description: "Contemporary room with city views, a queen bed, and modern furnishings.", Price: 120, Capacity: 2, Available: true, Images: []string{pexels("279746")}},
			{ID: "6", HotelID: "2", Name: "Executive Suite", Description: "Spacious suite with separate living area, king-sized bed, and executive work desk.", Price: 220, Capacity: 2, Available: false, Images: []string{pexels("164595")}},
			{ID: "7", HotelID: "3", Name: "Desert View Tent", Description: "Luxurious tent accommodation with modern amenities and stunning desert views.", Price: 200, Capacity: 2, Available: true, Images: []string{pexels("3735733")}},
			{ID: "8", HotelID: "3", Name: "Eco Bungalow", Description: "Sustainable bungalow built with local materials, featuring a queen bed and private terrace.", Price: 150, Capacity: 2, Available: true, Images: []string{pexels("3754594")}},
			{ID: "9", HotelID: "3", Name: "Family Desert Lodge", Description: "Spacious lodge with two bedrooms, accommodating up to five guests with desert views.", Price: 280, Capacity: 5, Available: false, Images: []string{pexels("3155666")}},
			{ID: "10", HotelID: "4", Name: "Sea View Room", Description: "Bright room with a balcony overlooking the Mediterranean Sea and a queen-sized bed.", Price: 140, Capacity: 2, Available: true, Images: []string{pexels("2598638")}},
			{ID: "11", HotelID: "4", Name: "Beachfront Suite", Description: "Luxury suite with direct beach access, a king-sized bed, and premium amenities.", Price: 220, Capacity: 2, Available: true, Images: []string{pexels("3634741")}},
			{ID: "12", HotelID: "4", Name: "Family Beach House", Description: "Detached beach house with two bedrooms, a full kitchen, and a private patio.", Price: 320, Capacity: 6, Available: false, Images: []string{pexels("206648")}},
		},
	}
}

// SeedBookings is the initial admin ledger.
func SeedBookings() []domain.BookingRecord {
	return []domain.BookingRecord{
		{ID: "1", GuestName: "John Smith", RoomName: "Heritage Suite", CheckIn: domain.MustDate("2024-03-20"), CheckOut: domain.MustDate("2024-03-23"), Status: domain.StatusConfirmed, Guests: 2, TotalPrice: 360},
		{ID: "2", GuestName: "Sarah Johnson", RoomName: "Deluxe Double Room", CheckIn: domain.MustDate("2024-03-22"), CheckOut: domain.MustDate("2024-03-25"), Status: domain.StatusPending, Guests: 2, TotalPrice: 480},
		{ID: "3", GuestName: "Mohammed Ali", RoomName: "Sea View Room", CheckIn: domain.MustDate("2024-03-21"), CheckOut: domain.MustDate("2024-03-24"), Status: domain.StatusCancelled, Guests: 3, TotalPrice: 420},
	}
}
