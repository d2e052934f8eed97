package models

// Rank is a crew member's rank. Values outside RankOrder are kept as entered
// but have no position in the ordering.
type Rank string

// RankUnrecognized is the index of any rank missing from RankOrder.
const RankUnrecognized = -1

// RankOrder lists ranks from lowest to highest.
var RankOrder = []Rank{
	"Recruit",
	"Seaman",
	"Marine",
	"Lance Corporal",
	"Able Seaman",
	"Corporal",
	"Junior Petty Officer",
	"Staff Sergeant",
	"Petty Officer",
	"Gunnery Sergeant",
	"Chief Petty Officer",
	"Master Sergeant",
	"Senior Chief Petty Officer",
	"Second Lieutenant",
	"Midshipman",
	"Marine Captain",
	"Lieutenant",
	"Major",
	"Lieutenant Commander",
	"Lieutenant Colonel",
	"Commander",
	"Colonel",
	"Captain",
	"Brigadier General",
	"Commodore",
	"Major General",
	"Rear Admiral",
	"Vice Admiral",
	"Admiral",
}

var rankIndex = func() map[Rank]int {
	m := make(map[Rank]int, len(RankOrder))
	for i, r := range RankOrder {
		m[r] = i
	}
	return m
}()

// Index is the position of r in RankOrder, or RankUnrecognized.
func (r Rank) Index() int {
	if i, ok := rankIndex[r]; ok {
		return i
	}
	return RankUnrecognized
}

func (r Rank) Recognized() bool { return r.Index() != RankUnrecognized }

// Role is a crew member's station aboard.
type Role string

const (
	RoleHelm      Role = "Helm"
	RoleGunner    Role = "Gunner"
	RoleCarpenter Role = "Carpenter"
	RoleFlex      Role = "Flex"
)

var Roles = []Role{RoleHelm, RoleGunner, RoleCarpenter, RoleFlex}

// Only the "Cannons" spelling carries the cannon token; crews picked from
// Roles as Gunner are posted without one.
var roleEmoji = map[Role]string{
	RoleHelm:      ":Wheel:",
	"Cannons":     ":Cannon:",
	RoleCarpenter: ":Planks:",
	RoleFlex:      ":SwordFight:",
}

// Emoji is the Discord emoji token for the role, or "" when it has none.
func (r Role) Emoji() string {
	return roleEmoji[r]
}
