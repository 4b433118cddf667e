package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "bank",
			objectType:  "question",
			identifier:  "01HZX3J6Y8Q2M7W9E4R5T6Y7U8",
			paramsKey:   nil,
			expectedKey: "placement:bank:question:01HZX3J6Y8Q2M7W9E4R5T6Y7U8",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "bank",
			objectType:  "question",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "placement:bank:question:123",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "bank",
			objectType:  "count",
			identifier:  "all",
			paramsKey:   []string{"cefr6", "b2"},
			expectedKey: "placement:bank:count:all:cefr6_b2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...))
		})
	}
}

func TestQuestionKeys(t *testing.T) {
	assert.Equal(t, "placement:bank:question:q1", QuestionKey("q1"))
	assert.Equal(t, []string{"placement:bank:question:a", "placement:bank:question:b"}, QuestionKeys("a", "b"))
	assert.Empty(t, QuestionKeys())
}
