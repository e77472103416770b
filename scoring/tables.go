package scoring

// Tables — именованная версия настройки очков. Все функции подсчёта получают
// таблицу явно: какая настройка действует, решает конфигурация вызывающего,
// а не константы внутри пакета.
type Tables struct {
	Name string

	// Position maps |predicted - reference| to points. Diffs beyond the map
	// score zero.
	Position map[int]int

	// Championship podium awards, per independently correct slot.
	ChampionshipFirst  int
	ChampionshipSecond int
	ChampionshipThird  int

	// PenaltyTiers indexes by offense number (1-based); offenses beyond the
	// last tier stay at the last tier.
	PenaltyTiers []int
}

// CurrentTables — действующая настройка лиги.
var CurrentTables = Tables{
	Name: "current",
	Position: map[int]int{
		0: 25,
		1: 18,
		2: 15,
		3: 10,
		4: 6,
		5: 2,
	},
	ChampionshipFirst:  250,
	ChampionshipSecond: 100,
	ChampionshipThird:  100,
	PenaltyTiers:       []int{10, 25, 50},
}

// ClassicTables — историческая настройка первых сезонов, оставлена как
// выбираемый пресет.
var ClassicTables = Tables{
	Name: "classic",
	Position: map[int]int{
		0: 12,
		1: 9,
		2: 7,
		3: 5,
		4: 4,
		5: 2,
	},
	ChampionshipFirst:  37,
	ChampionshipSecond: 25,
	ChampionshipThird:  25,
	PenaltyTiers:       []int{10, 25, 50},
}

// MaxPositionPoints возвращает максимум позиционной таблицы (очки за точное
// попадание).
func (t Tables) MaxPositionPoints() int {
	max := 0
	for _, pts := range t.Position {
		if pts > max {
			max = pts
		}
	}
	return max
}
