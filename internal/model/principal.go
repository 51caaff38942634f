package model

// Principal is the authenticated caller extracted from a bearer token.
type Principal struct {
	Subject string
	Name    string
}

func (p Principal) IsAnonymous() bool {
	return p.Subject == ""
}
