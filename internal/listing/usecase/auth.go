package usecase

// Authorizer is the capability handed to admin-only operations. Every such
// operation takes the acting user id and consults this explicitly instead of
// comparing against an ambient constant.
type Authorizer interface {
	IsAdmin(userID int64) bool
}

// StaticAuthorizer grants admin authority to a single configured chat id.
type StaticAuthorizer struct {
	adminID int64
}

func NewStaticAuthorizer(adminID int64) *StaticAuthorizer {
	return &StaticAuthorizer{adminID: adminID}
}

func (a *StaticAuthorizer) IsAdmin(userID int64) bool {
	return userID == a.adminID
}
