package engine

// Upgrade is the closed set of team research projects. Progress is a
// per-team counter owned by the World; an upgrade is complete when its
// progress reaches RoundsToComplete.
type Upgrade uint8

const (
	UpgradeFusion Upgrade = iota
	UpgradeVision
	UpgradeDefusion
	UpgradePickaxe
	UpgradeNuke

	upgradeCount
)

// UpgradeInfo is one row of the research table.
type UpgradeInfo struct {
	Name             string
	RoundsToComplete int32
}

var upgradeInfos = [upgradeCount]UpgradeInfo{
	UpgradeFusion:   {Name: "FUSION", RoundsToComplete: 25},
	UpgradeVision:   {Name: "VISION", RoundsToComplete: 25},
	UpgradeDefusion: {Name: "DEFUSION", RoundsToComplete: 25},
	UpgradePickaxe:  {Name: "PICKAXE", RoundsToComplete: 25},
	// Completing the nuke ends the match outright, so it is priced as a
	// whole-match commitment.
	UpgradeNuke: {Name: "NUKE", RoundsToComplete: 404},
}

// Info returns the research row for u.
func (u Upgrade) Info() UpgradeInfo {
	return upgradeInfos[u]
}

func (u Upgrade) String() string {
	if u < upgradeCount {
		return upgradeInfos[u].Name
	}
	return "?"
}
