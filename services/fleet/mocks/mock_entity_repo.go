// This file contains a hand-written GoMock double for the generic EntityRepo interface
package mocks

import (
	context "context"
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"
	models "github.com/piresc/shuttlefleet/internal/pkg/models"
)

// MockEntityRepo is a mock of EntityRepo interface.
type MockEntityRepo[T any] struct {
	ctrl     *gomock.Controller
	recorder *MockEntityRepoMockRecorder[T]
}

// MockEntityRepoMockRecorder is the mock recorder for MockEntityRepo.
type MockEntityRepoMockRecorder[T any] struct {
	mock *MockEntityRepo[T]
}

// NewMockEntityRepo creates a new mock instance.
func NewMockEntityRepo[T any](ctrl *gomock.Controller) *MockEntityRepo[T] {
	mock := &MockEntityRepo[T]{ctrl: ctrl}
	mock.recorder = &MockEntityRepoMockRecorder[T]{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEntityRepo[T]) EXPECT() *MockEntityRepoMockRecorder[T] {
	return m.recorder
}

// List mocks base method.
func (m *MockEntityRepo[T]) List(ctx context.Context, sort models.Sort, limit int) ([]T, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, sort, limit)
	ret0, _ := ret[0].([]T)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockEntityRepoMockRecorder[T]) List(ctx, sort, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockEntityRepo[T])(nil).List), ctx, sort, limit)
}

// Filter mocks base method.
func (m *MockEntityRepo[T]) Filter(ctx context.Context, query models.Query, sort models.Sort, limit int) ([]T, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Filter", ctx, query, sort, limit)
	ret0, _ := ret[0].([]T)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Filter indicates an expected call of Filter.
func (mr *MockEntityRepoMockRecorder[T]) Filter(ctx, query, sort, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Filter", reflect.TypeOf((*MockEntityRepo[T])(nil).Filter), ctx, query, sort, limit)
}

// Create mocks base method.
func (m *MockEntityRepo[T]) Create(ctx context.Context, entity T) (T, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, entity)
	ret0, _ := ret[0].(T)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockEntityRepoMockRecorder[T]) Create(ctx, entity interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockEntityRepo[T])(nil).Create), ctx, entity)
}

// Update mocks base method.
func (m *MockEntityRepo[T]) Update(ctx context.Context, id string, fields models.Fields) (T, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, id, fields)
	ret0, _ := ret[0].(T)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Update indicates an expected call of Update.
func (mr *MockEntityRepoMockRecorder[T]) Update(ctx, id, fields interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockEntityRepo[T])(nil).Update), ctx, id, fields)
}

// Delete mocks base method.
func (m *MockEntityRepo[T]) Delete(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockEntityRepoMockRecorder[T]) Delete(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockEntityRepo[T])(nil).Delete), ctx, id)
}
