package helpers

// UserID is the caller identity used for hosting and RSVPs.
func (c *CustomClaims) UserID() string {
	return c.Subject
}

func (c *CustomClaims) GetSafeRole() string {
	if c.Role == "" {
		return "guest"
	}
	return c.Role
}
