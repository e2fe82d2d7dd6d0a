package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"coladay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	reservationsCollection = "reservations"
	countersCollection     = "counters"
	positionCounterID      = "ledgerPosition"
)

type slotDocument struct {
	Room     int    `bson:"room"`
	Timeslot int    `bson:"timeslot"`
	Owner    string `bson:"owner"`
}

// MongoRepository keeps one document per (room, timeslot) pair and a counter
// document for the ledger position. Mutations are conditional updates on the
// current owner, so conflicting writers are serialized by the server and the
// loser matches zero documents.
type MongoRepository struct {
	slots     *mongo.Collection
	counters  *mongo.Collection
	hourStart int
	hourEnd   int
}

func NewMongoRepository(db *mongo.Database, hourStart, hourEnd int) (*MongoRepository, error) {
	repo := &MongoRepository{
		slots:     db.Collection(reservationsCollection),
		counters:  db.Collection(countersCollection),
		hourStart: hourStart,
		hourEnd:   hourEnd,
	}
	if err := repo.ensureSchedule(); err != nil {
		return nil, err
	}
	return repo, nil
}

// ensureSchedule seeds the full (room, timeslot) grid so every pair always
// has exactly one record, free or owned.
func (r *MongoRepository) ensureSchedule() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var writes []mongo.WriteModel
	for room := 0; room < models.RoomCount; room++ {
		for t := r.hourStart; t < r.hourEnd; t++ {
			writes = append(writes, mongo.NewUpdateOneModel().
				SetFilter(bson.M{"room": room, "timeslot": t}).
				SetUpdate(bson.M{"$setOnInsert": bson.M{"owner": string(models.AddressZero)}}).
				SetUpsert(true))
		}
	}
	if _, err := r.slots.BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to seed reservation grid: %w", err)
	}
	return nil
}

func (r *MongoRepository) GetRoom(ctx context.Context, room models.Room) (models.Schedule, error) {
	opts := options.Find().SetSort(bson.M{"timeslot": 1})
	cursor, err := r.slots.Find(ctx, bson.M{"room": int(room)}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read room %s: %w", room, err)
	}
	var docs []slotDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode room %s: %w", room, err)
	}

	schedule := make(models.Schedule, r.hourEnd-r.hourStart)
	for i := range schedule {
		schedule[i] = models.AddressZero
	}
	for _, doc := range docs {
		idx := doc.Timeslot - r.hourStart
		if idx >= 0 && idx < len(schedule) {
			schedule[idx] = models.Address(doc.Owner)
		}
	}
	return schedule, nil
}

func (r *MongoRepository) Reserve(ctx context.Context, room models.Room, timeslot int, requester models.Address) (uint64, error) {
	filter := bson.M{
		"room":     int(room),
		"timeslot": timeslot,
		"owner":    string(models.AddressZero),
	}
	update := bson.M{"$set": bson.M{"owner": string(requester)}}
	res, err := r.slots.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("reserve update failed: %w", err)
	}
	if res.ModifiedCount == 0 {
		return 0, ErrSlotTaken
	}
	return r.nextPosition(ctx)
}

func (r *MongoRepository) Release(ctx context.Context, room models.Room, timeslot int, requester models.Address) (uint64, error) {
	filter := bson.M{
		"room":     int(room),
		"timeslot": timeslot,
		"owner":    string(requester),
	}
	update := bson.M{"$set": bson.M{"owner": string(models.AddressZero)}}
	res, err := r.slots.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("release update failed: %w", err)
	}
	if res.ModifiedCount == 0 {
		return 0, ErrNotOwner
	}
	return r.nextPosition(ctx)
}

func (r *MongoRepository) Position(ctx context.Context) (uint64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOne(ctx, bson.M{"_id": positionCounterID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read ledger position: %w", err)
	}
	return uint64(doc.Seq), nil
}

func (r *MongoRepository) nextPosition(ctx context.Context) (uint64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": positionCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to advance ledger position: %w", err)
	}
	return uint64(doc.Seq), nil
}
