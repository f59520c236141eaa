package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// apiError implements smithy.APIError for testing.
type apiError struct {
	code string
	msg  string
}

func (e *apiError) Error() string                 { return e.code + ": " + e.msg }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.msg }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

// listPageSize keeps the mock's pages small so List exercises
// continuation tokens.
const listPageSize = 2

// mockS3 is an in-memory S3Client with per-call error injection.
type mockS3 struct {
	mu       sync.Mutex
	objects  map[string][]byte
	modTimes map[string]time.Time

	getErr    error
	putErr    error
	deleteErr error
	listErr   error
}

func newMockS3() *mockS3 {
	return &mockS3{
		objects:  make(map[string][]byte),
		modTimes: make(map[string]time.Time),
	}
}

func (m *mockS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &apiError{code: "NoSuchKey", msg: "the specified key does not exist"}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *mockS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := aws.ToString(in.Key)
	m.objects[key] = data
	m.modTimes[key] = time.Now()
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := aws.ToString(in.Key)
	delete(m.objects, key)
	delete(m.modTimes, key)
	return &s3.DeleteObjectOutput{}, nil
}

func (m *mockS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	// The continuation token is the last key of the previous page.
	start := 0
	if tok := aws.ToString(in.ContinuationToken); tok != "" {
		start = len(keys)
		for i, k := range keys {
			if k > tok {
				start = i
				break
			}
		}
	}
	end := min(start+listPageSize, len(keys))

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(k),
			Size:         aws.Int64(int64(len(m.objects[k]))),
			LastModified: aws.Time(m.modTimes[k]),
		})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end-1])
	}
	return out, nil
}

func TestS3PutGet(t *testing.T) {
	m := newMockS3()
	store := NewS3(m, "bucket", "")
	ctx := context.Background()

	w, err := store.Put(ctx, "snap.jmdb")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "hello s3"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := store.Get(ctx, "snap.jmdb")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello s3" {
		t.Fatalf("got %q, want %q", got, "hello s3")
	}
}

func TestS3GetNotExist(t *testing.T) {
	m := newMockS3()
	store := NewS3(m, "bucket", "")

	_, err := store.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for missing object")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestS3GetOtherError(t *testing.T) {
	m := newMockS3()
	m.getErr = &apiError{code: "SlowDown", msg: "throttled"}
	store := NewS3(m, "bucket", "")

	_, err := store.Get(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, os.ErrNotExist) {
		t.Fatal("throttling error must not map to os.ErrNotExist")
	}
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) || apiErr.ErrorCode() != "SlowDown" {
		t.Fatalf("original error lost: %v", err)
	}
}

func TestS3RemoveIdempotent(t *testing.T) {
	m := newMockS3()
	store := NewS3(m, "bucket", "")
	ctx := context.Background()

	if err := store.Remove(ctx, "ghost"); err != nil {
		t.Fatalf("Remove of missing object: %v", err)
	}

	w, _ := store.Put(ctx, "snap")
	io.WriteString(w, "x")
	w.Close()

	if err := store.Remove(ctx, "snap"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "snap"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("object still readable after Remove: %v", err)
	}
}

func TestS3PutUploadError(t *testing.T) {
	m := newMockS3()
	injected := &apiError{code: "AccessDenied", msg: "nope"}
	m.putErr = injected
	store := NewS3(m, "bucket", "")

	w, err := store.Put(context.Background(), "snap")
	if err != nil {
		t.Fatal(err)
	}
	// The write may fail once the upload aborts; Close must report it
	// either way.
	w.Write([]byte("data"))
	if err := w.Close(); !errors.Is(err, injected) {
		t.Fatalf("Close = %v, want %v", err, injected)
	}
}

func TestS3KeyPrefix(t *testing.T) {
	m := newMockS3()
	store := NewS3(m, "bucket", "backups/prod")
	ctx := context.Background()

	w, _ := store.Put(ctx, "snap.jmdb")
	io.WriteString(w, "x")
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if _, ok := m.objects["backups/prod/snap.jmdb"]; !ok {
		t.Fatalf("object not stored under prefixed key, have %v", keysOf(m.objects))
	}

	r, err := store.Get(ctx, "snap.jmdb")
	if err != nil {
		t.Fatal(err)
	}
	r.Close()

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].Name != "snap.jmdb" {
		t.Fatalf("List = %+v, want one entry named snap.jmdb", infos)
	}
}

func TestS3List(t *testing.T) {
	m := newMockS3()
	store := NewS3(m, "bucket", "snaps")
	ctx := context.Background()

	// More objects than one mock page, so List must follow
	// continuation tokens.
	contents := map[string]string{
		"echo":    "12345",
		"charlie": "123",
		"alpha":   "1",
		"delta":   "1234",
		"bravo":   "12",
	}
	for name, body := range contents {
		w, _ := store.Put(ctx, name)
		io.WriteString(w, body)
		if err := w.Close(); err != nil {
			t.Fatalf("Put %s: %v", name, err)
		}
	}
	// An object outside the prefix must not show up.
	m.objects["other/stray"] = []byte("zzz")
	m.modTimes["other/stray"] = time.Now()

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	wantOrder := []string{"alpha", "bravo", "charlie", "delta", "echo"}
	if len(infos) != len(wantOrder) {
		t.Fatalf("List returned %d entries, want %d", len(infos), len(wantOrder))
	}
	for i, info := range infos {
		if info.Name != wantOrder[i] {
			t.Errorf("position %d: name = %q, want %q", i, info.Name, wantOrder[i])
		}
		if info.Size != int64(len(contents[info.Name])) {
			t.Errorf("%s: size = %d, want %d", info.Name, info.Size, len(contents[info.Name]))
		}
		if info.ModTime.IsZero() {
			t.Errorf("%s: ModTime is zero", info.Name)
		}
	}
}

func TestS3ListError(t *testing.T) {
	m := newMockS3()
	injected := &apiError{code: "AccessDenied", msg: "nope"}
	m.listErr = injected
	store := NewS3(m, "bucket", "")

	if _, err := store.List(context.Background()); !errors.Is(err, injected) {
		t.Fatalf("List = %v, want %v", err, injected)
	}
}

func TestIsS3NotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"no such key", &apiError{code: "NoSuchKey"}, true},
		{"not found", &apiError{code: "NotFound"}, true},
		{"wrapped", fmt.Errorf("get: %w", &apiError{code: "NoSuchKey"}), true},
		{"other api error", &apiError{code: "AccessDenied"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isS3NotFound(tt.err); got != tt.want {
				t.Errorf("isS3NotFound(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func keysOf(m map[string][]byte) []string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
