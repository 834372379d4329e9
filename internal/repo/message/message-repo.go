package message_repo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/QuangLP2607/DATN-final-sub001/internal/entity"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	database   = "classroom"
	collection = "messages"
)

type MessageRepo struct {
	AppState *state.AppState
}

func NewMessageRepo(appState *state.AppState) MessageRepoContract {
	return &MessageRepo{
		AppState: appState,
	}
}

func (r *MessageRepo) messages() *mongo.Collection {
	return r.AppState.Mongo.Database(database).Collection(collection)
}

func (r *MessageRepo) InsertMessage(ctx context.Context, msg *entity.Message) (primitive.ObjectID, *app_error.AppError) {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	_, err := r.messages().InsertOne(ctx, msg)
	if err != nil {
		return primitive.NilObjectID, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to insert message: %v", err), "mongo")
	}
	return msg.ID, nil
}

func (r *MessageRepo) FindMessageByID(ctx context.Context, messageID string) (*entity.Message, *app_error.AppError) {
	objID, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, app_error.InvalidArgument(fmt.Sprintf("invalid message ID: %v", err), "message-id")
	}

	var message entity.Message
	if err := r.messages().FindOne(ctx, bson.M{"_id": objID}).Decode(&message); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NotFound("message not found", "message-id")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to fetch message: %v", err), "mongo")
	}

	return &message, nil
}

func (r *MessageRepo) ListMessages(ctx context.Context, classID string, limit int, beforeID *string) ([]*entity.Message, *app_error.AppError) {
	filter := bson.M{"class_id": classID}

	// cursor pagination on _id, which carries the append order
	if beforeID != nil {
		objID, err := primitive.ObjectIDFromHex(*beforeID)
		if err != nil {
			return nil, app_error.InvalidArgument(fmt.Sprintf("error when trying to parse before_id: %v", err), "before-id")
		}
		filter["_id"] = bson.M{"$lt": objID}
	}

	cur, err := r.messages().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to fetch messages: %v", err), "mongo")
	}

	defer cur.Close(ctx)

	var messages []*entity.Message
	if err := cur.All(ctx, &messages); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to decode messages: %v", err), "mongo")
	}

	// reverse so the caller sees oldest first, newest last
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *MessageRepo) UpdateContent(ctx context.Context, msg *entity.Message, originalTimestamp *time.Time) *app_error.AppError {
	filter := bson.M{
		"_id":        msg.ID,
		"is_deleted": false,
	}

	// optimistic locking - ensure message wasn't updated by someone else
	if originalTimestamp != nil {
		filter["updated_at"] = bson.M{"$lte": *originalTimestamp}
	}

	update := bson.M{
		"$set": bson.M{
			"content":    msg.Content,
			"updated_at": msg.UpdatedAt,
			"edited_at":  msg.EditedAt,
		},
	}

	result, err := r.messages().UpdateOne(ctx, filter, update)
	if err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to update message", "mongo")
	}

	if result.MatchedCount == 0 {
		return app_error.Conflict("message was modified by another operation", "concurrent-update")
	}

	return nil
}

func (r *MessageRepo) SoftDelete(ctx context.Context, messageID primitive.ObjectID, deletedAt time.Time) *app_error.AppError {
	update := bson.M{
		"$set": bson.M{
			"type":       entity.MessageDeleted,
			"content":    "",
			"media":      nil,
			"is_deleted": true,
			"deleted_at": deletedAt,
			"updated_at": deletedAt,
		},
	}

	// filtering on is_deleted keeps the operation idempotent, a second delete
	// matches nothing and changes nothing
	_, err := r.messages().UpdateOne(ctx, bson.M{"_id": messageID, "is_deleted": false}, update)
	if err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to soft delete message: %v", err), "mongo")
	}

	return nil
}
