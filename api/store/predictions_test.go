/* predictions_test.go
 * Contains unit tests for predictions.go
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

func TestStorePrediction_Upsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upserts a user's pick", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.Predictions = mt.Coll

		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 1},
			{Key: "nModified", Value: 0},
		})

		err := store.StorePrediction(CreateSamplePrediction("E1", "u1", "alpha", "T1"))
		assert.NoError(t, err)
	})
}

func TestStorePrediction_Validation(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("rejects predictions with missing fields", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.Predictions = mt.Coll

		err := store.StorePrediction(Prediction{EventID: "E1", UserID: "u1"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "selected option")
	})
}

func TestGetUserPrediction_NotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns ErrNoDocuments when the user has no pick", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.Predictions = mt.Coll

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.predictions", mtest.FirstBatch))

		_, err := store.GetUserPrediction("E1", "u1")
		assert.True(t, errors.Is(err, mongo.ErrNoDocuments))
	})
}

func TestFetchPredictionsForOption_Success(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("fetches every pick on the winning option", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.Predictions = mt.Coll

		first := mtest.CreateCursorResponse(1, "test.predictions", mtest.FirstBatch, bson.D{
			{Key: "event_id", Value: "E1"},
			{Key: "user_id", Value: "u1"},
			{Key: "username", Value: "alpha"},
			{Key: "selected_option_id", Value: "T1"},
		})
		killCursors := mtest.CreateCursorResponse(0, "test.predictions", mtest.NextBatch)
		mt.AddMockResponses(first, killCursors)

		predictions, err := store.FetchPredictionsForOption("E1", "T1")
		require.NoError(t, err)
		require.Len(t, predictions, 1)
		assert.Equal(t, "u1", predictions[0].UserID)
		assert.Equal(t, "T1", predictions[0].SelectedOptionID)
	})
}

func TestFetchPredictionsForOption_Empty(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns an empty slice when nobody picked the option", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.Predictions = mt.Coll

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.predictions", mtest.FirstBatch))

		predictions, err := store.FetchPredictionsForOption("E1", "T1")
		require.NoError(t, err)
		assert.Empty(t, predictions)
	})
}
