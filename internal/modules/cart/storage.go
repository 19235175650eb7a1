package cart

// Fixed logical storage keys. Session registries namespace them per
// session id; a single-session deployment can use them as-is.
const (
	CartKey      = "naturevita_cart"
	FavoritesKey = "naturevita_favorites"
)

// Storage is the narrow key-value boundary the store persists through.
// It has no knowledge of cart semantics.
//
// Load deserializes the value stored under key into v and reports whether
// a well-formed value was found. A missing key or an unparseable value is
// "absent", never an error.
//
// Save serializes v under key, overwriting any prior value. Write failures
// are logged and swallowed inside the implementation; the caller's
// in-memory state is already committed and must not be rolled back.
type Storage interface {
	Load(key string, v interface{}) bool
	Save(key string, v interface{})
}
