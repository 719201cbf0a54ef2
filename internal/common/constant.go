package common

// StorageKey is the durable storage key holding the serialized directory.
const StorageKey = "arnorGymUsers"

// Session-scoped storage keys.
const (
	SessionKeyUser      = "currentUser"
	SessionKeyLoginTime = "loginTime"
	SessionKeyID        = "sessionId"
)

// ExportFileName is the default name of an exported directory document.
const ExportFileName = "arnor_gym_users.json"
