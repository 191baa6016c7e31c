package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	driver "github.com/go-sql-driver/mysql"

	"vungtau_stay/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}

func isDuplicate(err error) bool {
	var me *driver.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// --- catalog -----------------------------------------------------------------

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	amen, _ := json.Marshal(h.Amenities)
	imgs, _ := json.Marshal(h.Images)
	var rating any
	if h.Rating != nil {
		rating = *h.Rating
	}
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID,
		h.Name,
		h.Address,
		h.Ward,
		h.PropertyType,
		valStr(h.Description),
		string(amen),
		string(imgs),
		rating,
		h.ReviewCount,
		h.Featured,
	)
	return err
}

func (r *Repo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	amen, _ := json.Marshal(rm.Amenities)
	imgs, _ := json.Marshal(rm.Images)
	_, err := r.db.ExecContext(ctx, upsertRoomSQL,
		rm.ID,
		rm.HotelID,
		rm.Name,
		rm.Type,
		rm.Price,
		rm.Capacity,
		valInt(rm.Size),
		valStr(rm.Description),
		string(amen),
		string(imgs),
		rm.Available,
	)
	return err
}

func (r *Repo) UpsertDiscount(ctx context.Context, d domain.Discount) error {
	appl, _ := json.Marshal(d.ApplicableTo)
	_, err := r.db.ExecContext(ctx, upsertDiscountSQL,
		d.ID,
		d.Code,
		d.Description,
		d.DiscountPercent,
		valInt64(d.MinOrderAmount),
		valInt(d.MaxUses),
		d.UsedCount,
		valTime(d.ValidFrom),
		d.ValidUntil,
		string(appl),
		d.IsActive,
	)
	return err
}

func (r *Repo) ListHotels(ctx context.Context, q domain.HotelsQuery) ([]domain.Hotel, error) {
	var (
		where []string
		args  []any
	)
	if q.Ward != nil {
		where = append(where, "ward = ?")
		args = append(args, *q.Ward)
	}
	if q.PropertyType != nil {
		where = append(where, "property_type = ?")
		args = append(args, *q.PropertyType)
	}
	if q.Q != nil {
		where = append(where, "(name LIKE ? OR address LIKE ?)")
		like := "%" + *q.Q + "%"
		args = append(args, like, like)
	}
	if q.FeaturedOnly {
		where = append(where, "featured = 1")
	}

	sqlStr := "SELECT" + hotelColumns + "FROM hotels"
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}
	sqlStr += " ORDER BY featured DESC, rating DESC, id LIMIT ?"
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	row := r.db.QueryRowContext(ctx, getHotelSQL, id)
	h, err := scanHotel(row)
	if err == sql.ErrNoRows {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

type rowScanner interface{ Scan(dest ...any) error }

func scanHotel(row rowScanner) (domain.Hotel, error) {
	var h domain.Hotel
	var desc sql.NullString
	var rating sql.NullFloat64
	var amenitiesJSON, imagesJSON []byte
	if err := row.Scan(
		&h.ID, &h.Name, &h.Address, &h.Ward, &h.PropertyType, &desc,
		&amenitiesJSON, &imagesJSON, &rating, &h.ReviewCount, &h.Featured,
	); err != nil {
		return domain.Hotel{}, err
	}
	if desc.Valid {
		s := desc.String
		h.Description = &s
	}
	if rating.Valid {
		f := rating.Float64
		h.Rating = &f
	}
	_ = json.Unmarshal(amenitiesJSON, &h.Amenities)
	_ = json.Unmarshal(imagesJSON, &h.Images)
	return h, nil
}

func (r *Repo) ListRooms(ctx context.Context, hotelID string) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, listRoomsSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repo) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	row := r.db.QueryRowContext(ctx, getRoomSQL, id)
	rm, err := scanRoom(row)
	if err == sql.ErrNoRows {
		return domain.Room{}, domain.ErrNotFound
	}
	return rm, err
}

func scanRoom(row rowScanner) (domain.Room, error) {
	var rm domain.Room
	var size sql.NullInt64
	var desc sql.NullString
	var amenitiesJSON, imagesJSON []byte
	if err := row.Scan(
		&rm.ID, &rm.HotelID, &rm.Name, &rm.Type, &rm.Price, &rm.Capacity, &size,
		&desc, &amenitiesJSON, &imagesJSON, &rm.Available,
	); err != nil {
		return domain.Room{}, err
	}
	if size.Valid {
		n := int(size.Int64)
		rm.Size = &n
	}
	if desc.Valid {
		s := desc.String
		rm.Description = &s
	}
	_ = json.Unmarshal(amenitiesJSON, &rm.Amenities)
	_ = json.Unmarshal(imagesJSON, &rm.Images)
	return rm, nil
}

// --- bookings ----------------------------------------------------------------

func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) error {
	_, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.ID,
		b.UserID,
		b.HotelID,
		b.RoomID,
		b.CheckIn,
		b.CheckOut,
		b.Guests,
		b.GuestName,
		b.GuestEmail,
		b.GuestPhone,
		valStr(b.SpecialRequests),
		b.TotalPrice,
		string(b.Status),
		string(b.PaymentMethod),
	)
	if isDuplicate(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *Repo) GetBooking(ctx context.Context, id, userID string) (domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, getBookingSQL, id, userID)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, err
}

func scanBooking(row rowScanner) (domain.Booking, error) {
	var b domain.Booking
	var special sql.NullString
	var status, method string
	if err := row.Scan(
		&b.ID, &b.UserID, &b.HotelID, &b.RoomID, &b.CheckIn, &b.CheckOut, &b.Guests,
		&b.GuestName, &b.GuestEmail, &b.GuestPhone, &special,
		&b.TotalPrice, &status, &method, &b.CreatedAt,
	); err != nil {
		return domain.Booking{}, err
	}
	if special.Valid {
		s := special.String
		b.SpecialRequests = &s
	}
	b.Status = domain.BookingStatus(status)
	b.PaymentMethod = domain.PaymentMethod(method)
	return b, nil
}

func (r *Repo) ListBookings(ctx context.Context, userID string) ([]domain.BookingView, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BookingView
	for rows.Next() {
		var v domain.BookingView
		var special sql.NullString
		var status, method string
		if err := rows.Scan(
			&v.ID, &v.UserID, &v.HotelID, &v.RoomID, &v.CheckIn, &v.CheckOut, &v.Guests,
			&v.GuestName, &v.GuestEmail, &v.GuestPhone, &special,
			&v.TotalPrice, &status, &method, &v.CreatedAt,
			&v.HotelName, &v.HotelAddress, &v.RoomName, &v.RoomType,
		); err != nil {
			return nil, err
		}
		if special.Valid {
			s := special.String
			v.SpecialRequests = &s
		}
		v.Status = domain.BookingStatus(status)
		v.PaymentMethod = domain.PaymentMethod(method)
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx, updateBookingStatusSQL, string(status), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --- discounts ---------------------------------------------------------------

func (r *Repo) GetActiveDiscount(ctx context.Context, code string, now time.Time) (domain.Discount, error) {
	row := r.db.QueryRowContext(ctx, getActiveDiscountSQL, code, now)

	var d domain.Discount
	var minOrder sql.NullInt64
	var maxUses sql.NullInt64
	var validFrom sql.NullTime
	var applJSON []byte
	if err := row.Scan(
		&d.ID, &d.Code, &d.Description, &d.DiscountPercent, &minOrder, &maxUses,
		&d.UsedCount, &validFrom, &d.ValidUntil, &applJSON, &d.IsActive,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Discount{}, domain.ErrNotFound
		}
		return domain.Discount{}, err
	}
	if minOrder.Valid {
		v := minOrder.Int64
		d.MinOrderAmount = &v
	}
	if maxUses.Valid {
		n := int(maxUses.Int64)
		d.MaxUses = &n
	}
	if validFrom.Valid {
		t := validFrom.Time
		d.ValidFrom = &t
	}
	_ = json.Unmarshal(applJSON, &d.ApplicableTo)
	return d, nil
}

// --- reviews -----------------------------------------------------------------

func (r *Repo) ListReviews(ctx context.Context, hotelID string, limit int) ([]domain.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, listReviewsSQL, hotelID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		var bookingID, comment sql.NullString
		if err := rows.Scan(
			&rv.ID, &rv.HotelID, &rv.UserID, &bookingID, &rv.Rating, &comment, &rv.CreatedAt,
		); err != nil {
			return nil, err
		}
		if bookingID.Valid {
			s := bookingID.String
			rv.BookingID = &s
		}
		if comment.Valid {
			s := comment.String
			rv.Comment = &s
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) CreateReview(ctx context.Context, rv domain.Review) error {
	var comment any
	if rv.Comment != nil {
		comment = *rv.Comment
	}
	_, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.ID, rv.HotelID, rv.UserID, valStr(rv.BookingID), rv.Rating, comment,
	)
	return err
}

func (r *Repo) HasCompletedStay(ctx context.Context, userID, hotelID string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, hasCompletedStaySQL, userID, hotelID).Scan(&ok)
	return ok, err
}

// --- users -------------------------------------------------------------------

func (r *Repo) CreateUser(ctx context.Context, u domain.User, fullName *string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertUserSQL, u.ID, u.Email, u.PasswordHash); err != nil {
		if isDuplicate(err) {
			return domain.ErrConflict
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, insertProfileSQL, u.ID, valStr(fullName)); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, getUserByEmailSQL, email))
}

func (r *Repo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, getUserByIDSQL, id))
}

func (r *Repo) scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

func (r *Repo) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	var p domain.Profile
	var name, phone, avatar sql.NullString
	err := r.db.QueryRowContext(ctx, getProfileSQL, userID).Scan(&p.UserID, &name, &phone, &avatar)
	if err == sql.ErrNoRows {
		return domain.Profile{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Profile{}, err
	}
	if name.Valid {
		s := name.String
		p.FullName = &s
	}
	if phone.Valid {
		s := phone.String
		p.Phone = &s
	}
	if avatar.Valid {
		s := avatar.String
		p.AvatarURL = &s
	}
	return p, nil
}

func (r *Repo) UpdateProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.db.ExecContext(ctx, upsertProfileSQL,
		p.UserID, valStr(p.FullName), valStr(p.Phone), valStr(p.AvatarURL),
	)
	return err
}
