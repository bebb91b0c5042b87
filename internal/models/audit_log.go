package models

// Audit actions.
const (
	AuditLoginFailed           = "LOGIN_FAILED"
	AuditAccountDeactivated    = "ACCOUNT_DEACTIVATED"
	AuditContentWarningPenalty = "CONTENT_WARNING_PENALTY"
	AuditCreateEndPage         = "CREATE_END_PAGE"
	AuditDeleteEndPage         = "DELETE_END_PAGE"
	AuditUploadMedia           = "UPLOAD_MEDIA"
	AuditRolesUpdated          = "ROLES_UPDATED"
	AuditAccountReactivated    = "ACCOUNT_REACTIVATED"
)

// AuditLog records sensitive user operations for security and compliance.
type AuditLog struct {
	Base
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	Action       string `gorm:"size:64;not null" json:"action"`
	ResourceType string `gorm:"size:64;not null" json:"resource_type"`
	ResourceID   uint   `json:"resource_id"`
	IPAddress    string `gorm:"size:64" json:"ip_address"`
	Changes      string `gorm:"type:text" json:"changes,omitempty"`
}
