package models

// Roster document keys
const (
	RosterKeyStudents = "managedStudents"
	RosterKeyMasters  = "managedMasters"
	RosterKeyMHSUsers = "managedMHSUsers"
)

// RoleOther is the MHS role whose holders are told apart by sub-role.
const RoleOther = "other"

// MHSUser is an organisation role holder.
type MHSUser struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	SubRole string `json:"subRole,omitempty"`
}

// DefaultMasters is the staff list used until one is stored.
var DefaultMasters = []string{
	"SHAFEEQUE RAHMAN MISBAHI",
	"ABDULLA UVAIS SAQAFI",
	"AHMED KAMIL SAQAFI",
	"ABDUL KHADER AHSANI",
	"NOUFAL ADANY",
}

// DefaultMHSUsers is the organisation role table used until one is stored.
var DefaultMHSUsers = []MHSUser{
	{Name: "President", Role: "president"},
	{Name: "Secretary", Role: "secretary"},
	{Name: "Accounter", Role: RoleOther, SubRole: "accounter"},
	{Name: "Seller", Role: RoleOther, SubRole: "seller"},
	{Name: "Computer", Role: RoleOther, SubRole: "computer"},
	{Name: "Library", Role: RoleOther, SubRole: "library"},
	{Name: "Kuthbkhana", Role: RoleOther, SubRole: "kuthbkhana"},
	{Name: "Spiritual", Role: RoleOther, SubRole: "spiritual"},
	{Name: "Other", Role: RoleOther, SubRole: "general"},
}
