package models

// IconName is the closed set of icons the About page can render.
type IconName string

const (
	IconAward    IconName = "award"
	IconHeart    IconName = "heart"
	IconLeaf     IconName = "leaf"
	IconStar     IconName = "star"
	IconUsers    IconName = "users"
	IconUtensils IconName = "utensils"
	IconChefHat  IconName = "chef-hat"
	IconClock    IconName = "clock"
	IconTrophy   IconName = "trophy"
	IconSparkles IconName = "sparkles"
)

var iconLabels = map[IconName]string{
	IconAward:    "Award",
	IconHeart:    "Heart",
	IconLeaf:     "Leaf",
	IconStar:     "Star",
	IconUsers:    "Users",
	IconUtensils: "Utensils",
	IconChefHat:  "Chef hat",
	IconClock:    "Clock",
	IconTrophy:   "Trophy",
	IconSparkles: "Sparkles",
}

// Icons lists every known icon in display order.
func Icons() []IconName {
	return []IconName{
		IconAward, IconHeart, IconLeaf, IconStar, IconUsers,
		IconUtensils, IconChefHat, IconClock, IconTrophy, IconSparkles,
	}
}

func (i IconName) Valid() bool {
	_, ok := iconLabels[i]
	return ok
}

func (i IconName) Label() string {
	return iconLabels[i]
}
