package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quizflow/internal/domain"
)

// --- MockTextExtractor ---
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(payload string) (*domain.ExtractedText, error) {
	args := m.Called(payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractedText), args.Error(1)
}

var _ domain.TextExtractor = (*MockTextExtractor)(nil)

// --- MockCompletionClient ---
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

var _ domain.CompletionClient = (*MockCompletionClient)(nil)

// --- MockTitleDeriver ---
type MockTitleDeriver struct {
	mock.Mock
}

func (m *MockTitleDeriver) DeriveTitle(ctx context.Context, fileName string) string {
	args := m.Called(ctx, fileName)
	return args.String(0)
}

var _ domain.TitleDeriver = (*MockTitleDeriver)(nil)

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) HSet(ctx context.Context, key, field, value string) error {
	args := m.Called(ctx, key, field, value)
	return args.Error(0)
}

func (m *MockCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCache) HLen(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) RPush(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	callArgs := make([]interface{}, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, key := range keys {
		callArgs = append(callArgs, key)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ domain.Cache = (*MockCache)(nil)
