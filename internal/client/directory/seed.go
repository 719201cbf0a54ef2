package directory

// Builtins returns a fresh copy of the demonstration accounts written on
// the very first start.
func Builtins() *Directory {
	d := New()
	d.Put("admin", UserRecord{Password: "password123", Email: "admin@arnorgym.com", Role: "administrator"})
	d.Put("user1", UserRecord{Password: "123456", Email: "user1@example.com", Role: "member"})
	d.Put("guest", UserRecord{Password: "guest123", Email: "guest@arnorgym.com", Role: "guest"})
	d.Put("arnor", UserRecord{Password: "gym2024", Email: "arnor@arnorgym.com", Role: "trainer"})
	return d
}

// Test account added by the developer tools.
const (
	TestUsername = "test"
	TestPassword = "123456"
	TestEmail    = "test@example.com"
)
