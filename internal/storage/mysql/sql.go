package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, address, ward, property_type, description, amenities, images, rating, review_count, featured)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name          = VALUES(name),
  address       = VALUES(address),
  ward          = VALUES(ward),
  property_type = VALUES(property_type),
  description   = VALUES(description),
  amenities     = VALUES(amenities),
  images        = VALUES(images),
  rating        = VALUES(rating),
  review_count  = VALUES(review_count),
  featured      = VALUES(featured),
  updated_at    = CURRENT_TIMESTAMP
`

const upsertRoomSQL = `
INSERT INTO rooms
  (id, hotel_id, name, room_type, price, capacity, size_sqm, description, amenities, images, available)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name        = VALUES(name),
  room_type   = VALUES(room_type),
  price       = VALUES(price),
  capacity    = VALUES(capacity),
  size_sqm    = VALUES(size_sqm),
  description = VALUES(description),
  amenities   = VALUES(amenities),
  images      = VALUES(images),
  available   = VALUES(available),
  updated_at  = CURRENT_TIMESTAMP
`

const upsertDiscountSQL = `
INSERT INTO discounts
  (id, code, description, discount_percent, min_order_amount, max_uses, used_count, valid_from, valid_until, applicable_to, is_active)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  description      = VALUES(description),
  discount_percent = VALUES(discount_percent),
  min_order_amount = VALUES(min_order_amount),
  max_uses         = VALUES(max_uses),
  valid_from       = VALUES(valid_from),
  valid_until      = VALUES(valid_until),
  applicable_to    = VALUES(applicable_to),
  is_active        = VALUES(is_active)
`

const insertBookingSQL = `
INSERT INTO bookings
  (id, user_id, hotel_id, room_id, check_in, check_out, guests,
   guest_name, guest_email, guest_phone, special_requests,
   total_price, status, payment_method)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const hotelColumns = `
  id, name, address, ward, property_type, description,
  amenities, images, rating, review_count, featured
`

const getHotelSQL = `SELECT` + hotelColumns + `FROM hotels WHERE id = ?`

const roomColumns = `
  id, hotel_id, name, room_type, price, capacity, size_sqm,
  description, amenities, images, available
`

const listRoomsSQL = `SELECT` + roomColumns + `FROM rooms WHERE hotel_id = ? ORDER BY price, id`

const getRoomSQL = `SELECT` + roomColumns + `FROM rooms WHERE id = ?`

const bookingColumns = `
  id, user_id, hotel_id, room_id, check_in, check_out, guests,
  guest_name, guest_email, guest_phone, special_requests,
  total_price, status, payment_method, created_at
`

// Owner filter lives in the query itself so a foreign booking scans as no rows.
const getBookingSQL = `SELECT` + bookingColumns + `FROM bookings WHERE id = ? AND user_id = ?`

const listBookingsSQL = `
SELECT
  b.id, b.user_id, b.hotel_id, b.room_id, b.check_in, b.check_out, b.guests,
  b.guest_name, b.guest_email, b.guest_phone, b.special_requests,
  b.total_price, b.status, b.payment_method, b.created_at,
  h.name, h.address, r.name, r.room_type
FROM bookings b
JOIN hotels h ON h.id = b.hotel_id
JOIN rooms  r ON r.id = b.room_id
WHERE b.user_id = ?
ORDER BY b.created_at DESC, b.id DESC
`

const updateBookingStatusSQL = `UPDATE bookings SET status = ? WHERE id = ?`

const getActiveDiscountSQL = `
SELECT
  id, code, description, discount_percent, min_order_amount, max_uses,
  used_count, valid_from, valid_until, applicable_to, is_active
FROM discounts
WHERE code = ? AND is_active = 1 AND valid_until >= ?
`

const listReviewsSQL = `
SELECT id, hotel_id, user_id, booking_id, rating, comment, created_at
FROM reviews
WHERE hotel_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`

const insertReviewSQL = `
INSERT INTO reviews (id, hotel_id, user_id, booking_id, rating, comment)
VALUES (?, ?, ?, ?, ?, ?)
`

const hasCompletedStaySQL = `
SELECT EXISTS(
  SELECT 1 FROM bookings
  WHERE user_id = ? AND hotel_id = ? AND status = 'completed'
)
`

const insertUserSQL = `
INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)
`

const insertProfileSQL = `
INSERT INTO profiles (user_id, full_name) VALUES (?, ?)
`

const getUserByEmailSQL = `
SELECT id, email, password_hash, created_at FROM users WHERE email = ?
`

const getUserByIDSQL = `
SELECT id, email, password_hash, created_at FROM users WHERE id = ?
`

const getProfileSQL = `
SELECT user_id, full_name, phone, avatar_url FROM profiles WHERE user_id = ?
`

const upsertProfileSQL = `
INSERT INTO profiles (user_id, full_name, phone, avatar_url)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  full_name  = VALUES(full_name),
  phone      = VALUES(phone),
  avatar_url = VALUES(avatar_url)
`
