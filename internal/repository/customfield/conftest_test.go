package customfield

import (
	"context"
	"testing"

	domcf "github.com/kailas-cloud/customfields/internal/domain/customfield"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn    func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn func(ctx context.Context, key string) (map[string]string, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testDefinition(t *testing.T) domcf.Definition {
	t.Helper()
	return domcf.New("Priority", domcf.ClassTopic, domcf.TypeInteger, []domcf.ViewTarget{domcf.TargetTopicView})
}
