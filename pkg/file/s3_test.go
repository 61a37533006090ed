package file_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/workersession/pkg/file"
	"github.com/dmitrymomot/workersession/pkg/session"
)

// fakeS3 is an in-memory S3Client that pages ListObjectsV2 results.
type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string][]byte
	pageSize int
	err      error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte), pageSize: 2}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	raw, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = raw
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(raw))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	f.mu.Unlock()
	sort.Strings(keys)

	start := 0
	if in.ContinuationToken != nil {
		start = sort.SearchStrings(keys, aws.ToString(in.ContinuationToken))
	}
	end := min(start+f.pageSize, len(keys))

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end])
	}
	return out, nil
}

func (f *fakeS3) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newS3Store(t *testing.T, client file.S3Client) *file.S3Store {
	t.Helper()
	store, err := file.NewS3Store(context.Background(), file.S3Config{
		Bucket: "sessions",
		Region: "us-east-1",
		Prefix: "app",
	}, file.WithS3Client(client))
	require.NoError(t, err)
	return store
}

func TestS3Store(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		t.Parallel()
		client := newFakeS3()
		store := newS3Store(t, client)

		sess := session.NewSession(sid("tok"), time.Now(), time.Hour)
		sess.Data["user"] = "alice"
		require.NoError(t, store.Save(ctx, sess))
		assert.Equal(t, []string{"app/" + sid("tok")}, client.keys())

		got, err := store.Get(ctx, sid("tok"))
		require.NoError(t, err)
		assert.Equal(t, sess.ID, got.ID)
		assert.Equal(t, "alice", got.Data["user"])
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		store := newS3Store(t, newFakeS3())

		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
		_, err = store.Get(ctx, "a/b")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		store := newS3Store(t, newFakeS3())

		require.NoError(t, store.Save(ctx, session.NewSession(sid("old"), time.Now().Add(-2*time.Hour), time.Hour)))
		_, err := store.Get(ctx, sid("old"))
		assert.ErrorIs(t, err, session.ErrSessionExpired)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		client := newFakeS3()
		store := newS3Store(t, client)

		require.NoError(t, store.Save(ctx, session.NewSession(sid("tok"), time.Now(), time.Hour)))
		require.NoError(t, store.Delete(ctx, sid("tok")))
		assert.Empty(t, client.keys())
	})

	t.Run("delete expired across pages", func(t *testing.T) {
		t.Parallel()
		client := newFakeS3()
		store := newS3Store(t, client)

		for _, tok := range []string{"a1", "a2", "a3"} {
			require.NoError(t, store.Save(ctx, session.NewSession(sid(tok), time.Now(), time.Hour)))
		}
		for _, tok := range []string{"d1", "d2"} {
			require.NoError(t, store.Save(ctx, session.NewSession(sid(tok), time.Now().Add(-2*time.Hour), time.Hour)))
		}
		client.objects["app/junk"] = []byte("{")
		client.objects["other/d9"] = []byte("{")

		require.NoError(t, store.DeleteExpired(ctx))
		assert.Equal(t, []string{"app/" + sid("a1"), "app/" + sid("a2"), "app/" + sid("a3"), "other/d9"}, client.keys())
	})

	t.Run("error classification", func(t *testing.T) {
		t.Parallel()
		client := newFakeS3()
		store := newS3Store(t, client)

		client.err = &smithy.GenericAPIError{Code: "AccessDenied", Message: "nope"}
		err := store.Save(ctx, session.NewSession(sid("tok"), time.Now(), time.Hour))
		assert.ErrorIs(t, err, file.ErrAccessDenied)

		client.err = &smithy.GenericAPIError{Code: "NoSuchBucket"}
		_, err = store.Get(ctx, sid("tok"))
		assert.ErrorIs(t, err, file.ErrBucketNotFound)

		client.err = context.DeadlineExceeded
		_, err = store.Get(ctx, sid("tok"))
		assert.ErrorIs(t, err, file.ErrOperationTimeout)

		client.err = errors.New("boom")
		err = store.DeleteExpired(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "list sessions")
	})

	t.Run("config validation", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewS3Store(ctx, file.S3Config{Region: "us-east-1"}, file.WithS3Client(newFakeS3()))
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})
}
