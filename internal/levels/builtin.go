package levels

import "github.com/Faultbox/m64vr/pkg/math"

// Asset ids for levels that are extracted but not yet playable:
//
//	7-9 castle interior, 10 hazy maze cave, 11 shifting sand land,
//	12 pyramid, 19 jolly roger bay, 25 rainbow ride, 27/29/31 bowser,
//	32-33 lethal lava, 35 sub, 38 ghost courtyard, 46 tall tall mountain.
var builtinDefs = []LevelDef{
	{
		Name:      "Castle Exterior",
		Asset:     26,
		Viewpoint: math.Vec3{X: 17.5, Y: 2.7, Z: 39.1},
		Exclude:   []string{"2", "5", "18", "23-34", "36-43"},
	},
	{
		Name:      "Bob-omb Battlefield",
		Asset:     14,
		Viewpoint: math.Vec3{X: 45.04, Y: 0.24, Z: 59.77},
		Exclude:   []string{"13", "23-29", "31-40", "42-51", "54-56", "59-73"},
	},
	{
		Name:      "Whomp's Fortress",
		Asset:     36,
		Viewpoint: math.Vec3{X: -39.57, Y: 5.12, Z: 40.06},
		Exclude:   []string{"14", "18", "22-34", "38-46", "48-62"},
	},
	{
		Name:      "Cool, Cool Mountain",
		Asset:     5,
		Viewpoint: math.Vec3{X: 13.32, Y: 25.608, Z: -24.71},
		Exclude:   []string{"16-43", "45-48", "50-59"},
	},
	{
		Name:      "Tiny-Huge Island (Huge)",
		Asset:     21,
		Viewpoint: math.Vec3{X: 72.03, Y: -29.69, Z: 72.42},
		Exclude:   []string{"12", "15-35", "37-42", "44-62", "65"},
	},
	{
		Name:      "Tiny-Huge Island (Tiny)",
		Asset:     22,
		Viewpoint: math.Vec3{X: 16.58, Y: -7.42, Z: 18.45},
		Scale:     0.25,
		Exclude:   []string{"12", "15-20", "23-54"},
	},
	{
		Name:      "Snowman's Land",
		Asset:     15,
		Viewpoint: math.Vec3{X: -58.0, Y: 10.24, Z: 6.08},
		Exclude:   []string{"12-13", "17-37", "39-57"},
	},
	{
		Name:      "Wet-Dry World",
		Asset:     17,
		Viewpoint: math.Vec3{X: -34.08, Y: 0.64, Z: 2.94},
		Indoor:    true,
		Exclude:   []string{"15-16", "21-28", "31-52", "55-59", "62-63"},
		Link: &LinkedArea{
			Asset:   18,
			Exclude: []string{"17-18", "20-24", "27-40"},
		},
	},
	{
		Name:      "Tick Tock Clock",
		Asset:     24,
		Viewpoint: math.Vec3{X: -13.78, Y: -48.22, Z: -0.13},
		Indoor:    true,
		Exclude:   []string{"16-17", "20-21", "24-42", "44-53"},
	},
}

// Builtin returns the registry of shipped levels.
func Builtin() *Registry {
	r, err := NewRegistry(builtinDefs...)
	if err != nil {
		panic("levels: invalid builtin definition: " + err.Error())
	}
	return r
}
