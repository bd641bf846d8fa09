package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, description, location, price, rating, images, amenities)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name        = VALUES(name),
  description = VALUES(description),
  location    = VALUES(location),
  price       = VALUES(price),
  rating      = VALUES(rating),
  images      = VALUES(images),
  amenities   = VALUES(amenities),
  updated_at  = CURRENT_TIMESTAMP
`

const upsertRoomSQL = `
INSERT INTO rooms
  (id, hotel_id, name, description, price, capacity, available, images)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  hotel_id    = VALUES(hotel_id),
  name        = VALUES(name),
  description = VALUES(description),
  price       = VALUES(price),
  capacity    = VALUES(capacity),
  available   = VALUES(available),
  images      = VALUES(images),
  updated_at  = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// seq preserves insertion order across upserts.
const hotelColumns = `h.id, h.name, h.description, h.location, h.price, h.rating, h.images, h.amenities`

const listHotelsSQL = `SELECT ` + hotelColumns + ` FROM hotels h ORDER BY h.seq`

const getHotelSQL = `SELECT ` + hotelColumns + ` FROM hotels h WHERE h.id = ?`

const roomColumns = `r.id, r.hotel_id, r.name, r.description, r.price, r.capacity, r.available, r.images`

// grouped by hotel so concurrent room seeding still lists in catalog order
const listRoomsSQL = `SELECT ` + roomColumns + ` FROM rooms r JOIN hotels h ON h.id = r.hotel_id ORDER BY h.seq, r.seq`

const listRoomsByHotelSQL = `SELECT ` + roomColumns + ` FROM rooms r WHERE r.hotel_id = ? ORDER BY r.seq`

const getRoomSQL = `SELECT ` + roomColumns + ` FROM rooms r WHERE r.id = ?`

// room ids per hotel, used to fill Hotel.Rooms
const roomIDsSQL = `SELECT r.hotel_id, r.id FROM rooms r ORDER BY r.seq`

const roomIDsByHotelSQL = `SELECT r.id FROM rooms r WHERE r.hotel_id = ? ORDER BY r.seq`
