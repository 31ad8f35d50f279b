package domain

import "time"

type ListingStatus string

const (
	StatusActive  ListingStatus = "active"
	StatusRemoved ListingStatus = "removed"
)

// ListingExpiryDays is the retention window stamped onto every new listing.
const ListingExpiryDays = 30

type Category string

const (
	CategoryRealEstate     Category = "real_estate"
	CategoryDigital        Category = "digital"
	CategoryClothing       Category = "clothing"
	CategoryVehicles       Category = "vehicles"
	CategoryHomeAppliances Category = "home_appliances"
	CategoryServices       Category = "services"
	CategoryJobs           Category = "jobs"
	CategoryEntertainment  Category = "entertainment"
	CategoryBaby           Category = "baby"
	CategoryPets           Category = "pets"
)

// Categories returns the closed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryRealEstate,
		CategoryDigital,
		CategoryClothing,
		CategoryVehicles,
		CategoryHomeAppliances,
		CategoryServices,
		CategoryJobs,
		CategoryEntertainment,
		CategoryBaby,
		CategoryPets,
	}
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

type Listing struct {
	ID          string
	UserID      int64
	Category    Category
	Title       string
	Description string
	Price       int64 // 0 means negotiable
	Contact     string
	Location    string
	Photos      []string // transport file references, best resolution per photo
	Status      ListingStatus
	IsUrgent    bool
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// ListingUpdate is a partial update; nil fields are left untouched.
type ListingUpdate struct {
	Title       *string
	Description *string
	Price       *int64
	Contact     *string
	Location    *string
	Status      *ListingStatus
	IsUrgent    *bool
}

type User struct {
	ID         int64
	Username   string
	FirstName  string
	LastName   string
	Blocked    bool
	LastActive time.Time
	CreatedAt  time.Time
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type ReportReason string

const (
	ReasonInappropriate ReportReason = "inappropriate"
	ReasonScam          ReportReason = "scam"
	ReasonFalseInfo     ReportReason = "false_info"
	ReasonDuplicate     ReportReason = "duplicate"
)

func ReportReasons() []ReportReason {
	return []ReportReason{ReasonInappropriate, ReasonScam, ReasonFalseInfo, ReasonDuplicate}
}

func (r ReportReason) Valid() bool {
	for _, known := range ReportReasons() {
		if r == known {
			return true
		}
	}
	return false
}

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportApproved ReportStatus = "approved"
	ReportRejected ReportStatus = "rejected"
)

type Report struct {
	ID           string
	ListingID    string
	ListingTitle string // captured at report time, not live-joined
	ReporterID   int64
	ReporterName string
	Reason       ReportReason
	Status       ReportStatus
	CreatedAt    time.Time
}

type Bookmark struct {
	UserID    int64
	ListingID string
	CreatedAt time.Time
}

type View struct {
	ListingID string
	UserID    int64
	Timestamp time.Time
}

type Interaction struct {
	ID        string
	UserID    int64
	Action    string
	Timestamp time.Time
	Payload   map[string]any
}

type Stats struct {
	TotalUsers       int64
	TotalListings    int64
	ActiveListings   int64
	UrgentListings   int64
	TodayViews       int64
	TodayNewUsers    int64
	TodayNewListings int64
	PendingReports   int64
}
