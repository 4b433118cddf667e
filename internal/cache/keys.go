package cache

import "strings"

const (
	GlobalKeyPrefix = "placement"

	bankService    = "bank"
	questionObject = "question"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuestionKey is the key of the cached copy of a bank question.
func QuestionKey(id string) string {
	return GenerateCacheKey(bankService, questionObject, id)
}

// QuestionKeys maps ids to their question keys.
func QuestionKeys(ids ...string) []string {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, QuestionKey(id))
	}
	return keys
}
