package domain

// Defaults for new helpdesk requests.
const (
	DefaultCategoryName = "Request"
	DefaultImpactName   = "Low"
	DefaultPriorityName = "Low"
	DefaultUrgencyName  = "Low"
	DefaultSupportLevel = "Tier1"
	DefaultSource       = "External"
	DefaultStatusName   = "Open"
)

// Accepted values for enumerated request fields.
var (
	ValidImpactNames   = []string{"Low", "On User", "On department", "Or On Business"}
	ValidPriorityNames = []string{"Low", "Medium", "High", "Urgent"}
	ValidUrgencyNames  = []string{"Low", "Medium", "High", "Urgent"}
	ValidSupportLevels = []string{"tier1", "tier2", "tier3", "tier4"}
	ValidStatusNames   = []string{"Open", "In Progress", "Pending", "Resolved", "Closed"}
)

// ServiceRequest is a new helpdesk request as submitted by a tool caller.
// Empty strings take the documented defaults.
type ServiceRequest struct {
	Subject             string
	RequesterEmail      string
	CategoryName        string
	CCEmailSet          []string
	Tags                []string
	ImpactName          string
	PriorityName        string
	UrgencyName         string
	DepartmentName      string
	LocationName        string
	SupportLevel        string
	Spam                bool
	AssigneeEmail       string
	TechnicianGroupName string
	Source              string
	StatusName          string
	Description         string
	CustomField         map[string]any
	LinkAssetIDs        []map[string]any
	LinkCIIDs           []map[string]any
	FileAttachments     []map[string]string
}

// RequestPayload is the JSON body sent to the helpdesk API.
type RequestPayload struct {
	Subject             string              `json:"subject"`
	RequesterEmail      string              `json:"requesterEmail"`
	ImpactName          string              `json:"impactName"`
	PriorityName        string              `json:"priorityName"`
	UrgencyName         string              `json:"urgencyName"`
	StatusName          string              `json:"statusName"`
	Spam                bool                `json:"spam"`
	CategoryName        string              `json:"categoryName,omitempty"`
	SupportLevel        string              `json:"supportLevel,omitempty"`
	Source              string              `json:"source,omitempty"`
	CCEmailSet          []string            `json:"ccEmailSet,omitempty"`
	Tags                []string            `json:"tags,omitempty"`
	DepartmentName      string              `json:"departmentName,omitempty"`
	LocationName        string              `json:"locationName,omitempty"`
	AssigneeEmail       string              `json:"assigneeEmail,omitempty"`
	TechnicianGroupName string              `json:"technicianGroupName,omitempty"`
	Description         string              `json:"description,omitempty"`
	CustomField         map[string]any      `json:"customField,omitempty"`
	LinkAssetIDs        []map[string]any    `json:"linkAssetIds,omitempty"`
	LinkCIIDs           []map[string]any    `json:"linkCiIds,omitempty"`
	FileAttachments     []map[string]string `json:"fileAttachments,omitempty"`
}

// RequestResult is the helpdesk API's acknowledgement of a created request.
type RequestResult struct {
	// Data is the decoded response body, nil when the body was not JSON.
	Data any

	// Raw is the response body when it could not be decoded.
	Raw string
}
