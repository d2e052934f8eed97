package models

// SampleCrew is the demonstration crew loaded by the sample action.
func SampleCrew() Manifest {
	return Manifest{
		{ID: "1", Name: "John Blackhook", Discord: "123456789", Rank: "Admiral", Role: RoleHelm},
		{ID: "2", Name: "Ruper Ironside", Discord: "234567890", Rank: "Captain", Role: "Cannons"},
		{ID: "3", Name: "Dirk Wavecrest", Discord: "345678901", Rank: "Lieutenant", Role: RoleCarpenter},
		{ID: "4", Name: "Jorg Stormbreaker", Discord: "456789012", Rank: "Seaman", Role: RoleFlex},
		{ID: "5", Name: "Erik Saltbeard", Discord: "567890123", Rank: "Marine", Role: RoleHelm, IsRep: true},
	}
}

// ApplySample fills s with demonstration data for its current mode.
// Fields the sample does not cover are kept.
func ApplySample(s *LogState) {
	crew := SampleCrew()
	s.Signature = crew[0].ID
	s.Crew = crew

	if s.Mode == ModeSkirmish {
		s.VoyageNumber = "3"
		s.Body = "Competed in intense skirmish battles against rival crews. Team displayed exceptional coordination and tactical prowess. Multiple close matches showcased the skill of our sailors."
		s.OurTeam = TeamAthena
		s.Dives = DiveLog{
			{OurTeam: TeamAthena, EnemyTeam: TeamReaper, Outcome: OutcomeWin, Notes: "Superior cannon work and smart positioning"},
			{OurTeam: TeamAthena, EnemyTeam: TeamReaper, Outcome: OutcomeLoss, Notes: "Caught off guard by their anchor strategy"},
			{OurTeam: TeamAthena, EnemyTeam: TeamReaper, Outcome: OutcomeWin, Notes: "Excellent teamwork, clean victory"},
		}
		return
	}

	s.VoyageNumber = "5"
	s.Body = "Set sail at dawn under favorable winds. Encountered three merchant vessels and one skeleton galleon. All encounters resolved favorably. Crew performed excellently throughout the expedition. Returned to port with full holds and morale high."
	s.Events = "Merchant Vessel Encountered\nSkeleton Galleon Vanquished\nKraken Tentacle Spotted\nLegendary Treasure Map Found"
	s.Gold = "5,250"
	s.Doubloons = "180"
	s.StartGold = "1,000"
	s.EndGold = "6,250"
	s.AncientCoins = "25"
	s.FishCaught = "12"
}
