package model

// Identity names one physical model variant within the process. It is a
// comparable value type; two identities are the same model iff both fields
// match.
type Identity struct {
	Name       string
	DeviceHint string
}

// String returns a human-readable form for logs. It is not injective, so it
// must not be used as a map or deduplication key.
func (id Identity) String() string {
	if id.DeviceHint == "" {
		return id.Name
	}
	return id.Name + "@" + id.DeviceHint
}
