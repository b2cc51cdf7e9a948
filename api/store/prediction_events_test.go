/* prediction_events_test.go
 * Contains unit tests for prediction_events.go
 */

package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestInsertPredictionEvent_Success(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts an open event", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.PredictionEvents = mt.Coll

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := store.InsertPredictionEvent(CreateSampleEvent("E1", "P1"))
		assert.NoError(t, err)
	})
}

func TestInsertPredictionEvent_Validation(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("rejects events without ids or enough options", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.PredictionEvents = mt.Coll

		err := store.InsertPredictionEvent(PredictionEvent{ProgramID: "P1"})
		assert.Error(t, err)

		event := CreateSampleEvent("E1", "P1")
		event.Options = event.Options[:1]
		err = store.InsertPredictionEvent(event)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least two options")
	})
}

func TestFindSettleableEvent_Found(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("finds the unevaluated event for a program", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.PredictionEvents = mt.Coll

		eventDoc := mtest.CreateCursorResponse(1, "test.prediction_events", mtest.FirstBatch, bson.D{
			{Key: "id", Value: "E1"},
			{Key: "program_id", Value: "P1"},
			{Key: "question", Value: "Who takes first place?"},
			{Key: "status", Value: "open"},
			{Key: "points", Value: 10},
			{Key: "options", Value: bson.A{
				bson.D{{Key: "id", Value: "T1"}, {Key: "label", Value: "Team One"}},
				bson.D{{Key: "id", Value: "T2"}, {Key: "label", Value: "Team Two"}},
			}},
		})
		mt.AddMockResponses(eventDoc)

		event, err := store.FindSettleableEvent("P1")
		require.NoError(t, err)
		assert.Equal(t, "E1", event.ID)
		assert.Equal(t, "open", event.Status)
		require.Len(t, event.Options, 2)
		assert.Equal(t, "T1", event.Options[0].ID)
	})
}

func TestFindSettleableEvent_None(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns ErrNoDocuments when no settleable event exists", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.PredictionEvents = mt.Coll

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.prediction_events", mtest.FirstBatch))

		_, err := store.FindSettleableEvent("P1")
		assert.True(t, errors.Is(err, mongo.ErrNoDocuments))
	})
}

func TestMarkEventEvaluated_WinsTransition(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reports true when this call performed the transition", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.PredictionEvents = mt.Coll

		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 1},
			{Key: "nModified", Value: 1},
		})

		won, err := store.MarkEventEvaluated("E1", "T1")
		require.NoError(t, err)
		assert.True(t, won)
	})
}

func TestMarkEventEvaluated_AlreadyEvaluated(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reports false when another caller already evaluated the event", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.PredictionEvents = mt.Coll

		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 0},
			{Key: "nModified", Value: 0},
		})

		won, err := store.MarkEventEvaluated("E1", "T1")
		require.NoError(t, err)
		assert.False(t, won)
	})
}

func TestCloseEvent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("closes an open event", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.PredictionEvents = mt.Coll

		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 1},
			{Key: "nModified", Value: 1},
		})

		closed, err := store.CloseEvent("E1")
		require.NoError(t, err)
		assert.True(t, closed)
	})

	mt.Run("reports false when the event is not open", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.PredictionEvents = mt.Coll

		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 0},
			{Key: "nModified", Value: 0},
		})

		closed, err := store.CloseEvent("E1")
		require.NoError(t, err)
		assert.False(t, closed)
	})
}
