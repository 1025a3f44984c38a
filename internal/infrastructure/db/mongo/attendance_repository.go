package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/officecorner/hr-system/internal/core/domain"
)

const attendanceCollection = "attendance"

const defaultHistoryLimit = 50

// AttendanceRepository implements ports.AttendanceRepository using MongoDB.
type AttendanceRepository struct {
	coll *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{coll: db.Collection(attendanceCollection)}
}

type mongoAttendance struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID    string             `bson:"employee_id"`
	Date          string             `bson:"date"`
	TimeIn        string             `bson:"time_in,omitempty"`
	TimeOut       string             `bson:"time_out,omitempty"`
	Status        string             `bson:"status"`
	Duration      int                `bson:"duration"`
	Notes         string             `bson:"notes,omitempty"`
	Location      string             `bson:"location,omitempty"`
	IsManualEntry bool               `bson:"is_manual_entry"`
	EnteredBy     string             `bson:"entered_by,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func toMongoAttendance(r *domain.AttendanceRecord) mongoAttendance {
	return mongoAttendance{
		EmployeeID:    r.EmployeeID,
		Date:          r.Date,
		TimeIn:        r.TimeIn,
		TimeOut:       r.TimeOut,
		Status:        string(r.Status),
		Duration:      r.Duration,
		Notes:         r.Notes,
		Location:      r.Location,
		IsManualEntry: r.IsManualEntry,
		EnteredBy:     r.EnteredBy,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (m mongoAttendance) toDomain() *domain.AttendanceRecord {
	return &domain.AttendanceRecord{
		ID:            m.ID.Hex(),
		EmployeeID:    m.EmployeeID,
		Date:          m.Date,
		TimeIn:        m.TimeIn,
		TimeOut:       m.TimeOut,
		Status:        domain.AttendanceStatus(m.Status),
		Duration:      m.Duration,
		Notes:         m.Notes,
		Location:      m.Location,
		IsManualEntry: m.IsManualEntry,
		EnteredBy:     m.EnteredBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *AttendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	res, err := r.coll.InsertOne(ctx, toMongoAttendance(record))
	if err != nil {
		return nil, fmt.Errorf("insert attendance: %w", err)
	}

	created := *record
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AttendanceRepository) Update(ctx context.Context, record *domain.AttendanceRecord) error {
	oid, err := primitive.ObjectIDFromHex(record.ID)
	if err != nil {
		return domain.ErrAttendanceNotFound
	}

	doc := toMongoAttendance(record)
	doc.ID = oid
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAttendanceNotFound
	}
	return nil
}

// Upsert replaces the record keyed by (employee_id, date), creating it when absent.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	filter := bson.M{"employee_id": record.EmployeeID, "date": record.Date}
	doc := toMongoAttendance(record)

	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out mongoAttendance
	if err := r.coll.FindOneAndReplace(ctx, filter, doc, opts).Decode(&out); err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return out.toDomain(), nil
}

func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*domain.AttendanceRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAttendanceNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AttendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*domain.AttendanceRecord, error) {
	return r.findOne(ctx, bson.M{"employee_id": employeeID, "date": date})
}

func (r *AttendanceRepository) findOne(ctx context.Context, filter bson.M) (*domain.AttendanceRecord, error) {
	var doc mongoAttendance
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AttendanceRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]*domain.AttendanceRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))
	return r.findMany(ctx, bson.M{"employee_id": employeeID}, opts)
}

func (r *AttendanceRepository) ListByDate(ctx context.Context, date string) ([]*domain.AttendanceRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "employee_id", Value: 1}})
	return r.findMany(ctx, bson.M{"date": date}, opts)
}

func (r *AttendanceRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.AttendanceRecord, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*domain.AttendanceRecord
	for cursor.Next(ctx) {
		var doc mongoAttendance
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode attendance: %w", err)
		}
		records = append(records, doc.toDomain())
	}
	return records, cursor.Err()
}

func (r *AttendanceRepository) CountByDateAndStatus(ctx context.Context, date string, status domain.AttendanceStatus) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"date": date, "status": string(status)})
}

// EnsureIndexes creates the per-day uniqueness constraint for clocked records.
func (r *AttendanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{string(domain.AttendancePresent), string(domain.AttendanceLate)}},
				}),
		},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
