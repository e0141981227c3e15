package comparison

import (
	"context"
	"errors"
	"testing"

	"table-reconciler/core/dataset"
	"table-reconciler/core/reconcile"
	"table-reconciler/core/storage/mocks"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStore_UploadRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newMemClient()
	store := NewStore(client, "test-bucket")

	ds := dataset.New("users.csv", "ID", "Name")
	require.NoError(t, ds.Append(dataset.Text("1"), dataset.Null()))
	require.NoError(t, ds.Append(dataset.Int(2), dataset.Text("Meera")))

	id := uuid.NewString()
	require.NoError(t, store.SaveUpload(ctx, id, ds))
	assert.Equal(t, []string{"uploads/" + id}, client.keys())

	got, err := store.LoadUpload(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ds.Columns, got.Columns)
	assert.Equal(t, "users.csv", got.Label)
	require.Len(t, got.Rows, 2)
	assert.True(t, got.Rows[0]["Name"].IsNull())
	assert.Equal(t, dataset.KindInt, got.Rows[1]["ID"].Kind())
}

func TestStore_ResultRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemClient(), "test-bucket")

	ref := dataset.New("SQL", "ID", "Amount")
	require.NoError(t, ref.Append(dataset.Int(1), dataset.Float(10.5)))
	cmp := dataset.New("f.csv", "ID", "Amount")
	require.NoError(t, cmp.Append(dataset.Text("1"), dataset.Text("11")))

	res, err := reconcile.Reconcile(ref, cmp, reconcile.Options{Keys: []string{"ID"}, ComparandLabel: "f.csv"})
	require.NoError(t, err)

	id := uuid.NewString()
	require.NoError(t, store.SaveResult(ctx, id, res))

	got, err := store.LoadResult(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, res.Summary, got.Summary)
	assert.Equal(t, res.Columns(), got.Columns())
	require.Len(t, got.Rows, 2)
	assert.Equal(t, res.Record(res.Rows[0]), got.Record(got.Rows[0]))
	assert.Equal(t, []string{"Amount"}, got.Rows[1].Mismatched)
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemClient(), "test-bucket")

	_, err := store.LoadUpload(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = store.LoadUpload(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrUploadExpired)

	_, err = store.LoadResult(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrResultExpired)

	assert.ErrorIs(t, store.SaveResult(ctx, "nope", &reconcile.Result{}), ErrInvalidID)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	client := newMemClient()
	store := NewStore(client, "test-bucket")

	require.NoError(t, store.SaveUpload(ctx, uuid.NewString(), dataset.New("a.csv", "X")))
	require.NoError(t, store.SaveResult(ctx, uuid.NewString(), &reconcile.Result{}))

	n, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, client.keys())
}

func TestStore_ClearListError(t *testing.T) {
	client := new(mocks.Client)
	listed := make(chan minio.ObjectInfo, 1)
	listed <- minio.ObjectInfo{Err: errors.New("access denied")}
	close(listed)
	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return((<-chan minio.ObjectInfo)(listed))

	_, err := NewStore(client, "test-bucket").Clear(context.Background())
	assert.ErrorContains(t, err, "access denied")
}
