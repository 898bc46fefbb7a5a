package org

// CredentialsInput is an embedded username/password pair on a request.
type CredentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileInput carries optional profile fields. A nil field means "leave
// unchanged" on update; on creation only Email is required.
type ProfileInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// CredentialsUpdate carries optional credential fields for partial updates.
type CredentialsUpdate struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// AddUserInput is the body of POST /company/{companyId}/users.
type AddUserInput struct {
	Profile     *ProfileInput     `json:"profile"`
	Credentials *CredentialsInput `json:"credentials"`
	Admin       bool              `json:"admin"`
}

// UpdateUserInput is the body of PATCH /users/{userId}. At least one of the
// two sections must be present; within a section, nil fields are preserved.
type UpdateUserInput struct {
	Profile     *ProfileInput      `json:"profile"`
	Credentials *CredentialsUpdate `json:"credentials"`
}

// TeamInput is the body of team create and update requests. Create requires
// Name, Description and TeammateIDs (the set may be empty); update treats
// nil fields as "leave unchanged" and a non-nil TeammateIDs as a full
// membership replacement.
type TeamInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	TeammateIDs *[]string `json:"teammateIds"`
}

// ProjectInput is the body of project create and update requests. Create
// requires TeamID.
type ProjectInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
	TeamID      *string `json:"teamId"`
}

// AnnouncementInput is the body of announcement create and update requests.
// The embedded credentials identify the acting admin.
type AnnouncementInput struct {
	Title       *string           `json:"title"`
	Message     *string           `json:"message"`
	Credentials *CredentialsInput `json:"credentials"`
}
