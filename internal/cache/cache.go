package cache

// Cache keeps JSON encoded values of the public listings.
type Cache interface {
	Get(key string, dest any) bool
	Set(key string, value any) error
	Delete(key string)
}
