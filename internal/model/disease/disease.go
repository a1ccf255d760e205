package disease

// Entry is one knowledge-base record: a lookup keyword plus the passage
// handed to the QA model as context.
type Entry struct {
	Keyword     string `json:"keyword"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Seed returns the built-in rice disease knowledge base. Order matters:
// Match scans entries front to back and keeps the first hit, so "brown spot"
// deliberately precedes "narrow brown spot".
func Seed() []Entry {
	return []Entry{
		{
			Keyword: "bacterial leaf blight",
			Name:    "Bacterial Leaf Blight",
			Description: "Bacterial Leaf Blight is caused by the bacterium Xanthomonas oryzae pv. oryzae. " +
				"Infected leaves show water-soaked stripes along the margins that turn yellow and then greyish white as the lesions dry out. " +
				"The disease spreads through infected seed, irrigation water and wind-driven rain, and is most severe in warm, humid weather with nitrogen over-fertilisation. " +
				"Management relies on resistant varieties, clean seed, balanced fertiliser use and draining fields to reduce humidity.",
		},
		{
			Keyword: "bacterial leaf streak",
			Name:    "Bacterial Leaf Streak",
			Description: "Bacterial Leaf Streak is caused by Xanthomonas oryzae pv. oryzicola. " +
				"It produces narrow, dark translucent streaks between the leaf veins, often with small amber beads of bacterial ooze on the surface. " +
				"The bacterium enters through stomata and wounds and spreads rapidly under warm, wet conditions. " +
				"Control measures include resistant varieties, certified seed and avoiding overhead irrigation during outbreaks.",
		},
		{
			Keyword: "bakanae",
			Name:    "Bakanae",
			Description: "Bakanae Disease, also known as Foolish Seedling, is caused by the fungus Fusarium fujikuroi. " +
				"The fungus produces gibberellins that make infected seedlings grow abnormally tall, thin and pale before they wilt and die. " +
				"It is a seed-borne disease, so hot-water seed treatment and fungicide seed dressing are the main controls. " +
				"Severely infected plants that survive produce empty panicles and partially filled grain.",
		},
		{
			Keyword: "brown spot",
			Name:    "Brown Spot",
			Description: "Brown Spot, or Helminthosporiosis, is caused by Bipolaris oryzae. " +
				"It appears as circular to oval brown lesions with grey centres on leaves and glumes, and it can kill seedlings outright. " +
				"The disease is strongly associated with nutrient-poor soils, drought stress and potassium deficiency. " +
				"Good soil fertility, seed treatment and resistant varieties keep it in check.",
		},
		{
			Keyword: "grassy stunt",
			Name:    "Rice Grassy Stunt",
			Description: "Rice Grassy Stunt Virus (RGSV) is a viral disease spread by the brown planthopper. " +
				"Infected plants are severely stunted with excessive tillering and short, narrow, pale green or yellow leaves that give a grassy rosette look. " +
				"Plants infected early usually produce no panicles at all. " +
				"Control depends on managing the planthopper vector and planting resistant varieties; there is no cure once a plant is infected.",
		},
		{
			Keyword: "narrow brown spot",
			Name:    "Narrow Brown Spot",
			Description: "Narrow Brown Spot, caused by the fungus Cercospora janseana, produces short, linear, light brown lesions that run parallel to the leaf veins. " +
				"The disease intensifies as plants approach maturity and can cause premature leaf death and leaf sheath browning. " +
				"It is most damaging on susceptible varieties in warm, humid weather late in the season. " +
				"Resistant varieties and fungicide application at heading reduce losses.",
		},
		{
			Keyword: "ragged stunt",
			Name:    "Rice Ragged Stunt",
			Description: "Rice Ragged Stunt Virus (RRSV), also spread by brown planthoppers, causes ragged or torn leaf edges, twisted leaf tips and vein swellings on leaves and sheaths. " +
				"Infected plants are stunted, produce nodal branches and set mostly unfilled grain. " +
				"The virus persists in the planthopper vector, so vector control and resistant varieties are the practical defence. " +
				"Early infection causes the greatest yield loss.",
		},
		{
			Keyword: "rice blast",
			Name:    "Rice Blast",
			Description: "Rice Blast, caused by the fungus Magnaporthe oryzae, is one of the most destructive rice diseases worldwide. " +
				"It produces spindle-shaped lesions with grey centres and brown margins on leaves, and can rot the node or the panicle neck, causing whiteheads and total grain loss. " +
				"The fungus thrives in cool nights with long dew periods and on over-fertilised crops. " +
				"Resistant varieties, split nitrogen applications and timely fungicide sprays are the main controls.",
		},
		{
			Keyword: "false smut",
			Name:    "Rice False Smut",
			Description: "Rice False Smut, caused by Ustilaginoidea virens, transforms individual grains into greenish, velvety spore balls that later turn orange-yellow to greenish black. " +
				"Only a few grains per panicle are usually affected, but the spore balls contaminate healthy grain and can carry mycotoxins. " +
				"The disease favours high humidity and rain at flowering combined with heavy nitrogen use. " +
				"Fungicide application at booting and clean seed reduce its incidence.",
		},
		{
			Keyword: "sheath blight",
			Name:    "Sheath Blight",
			Description: "Sheath Blight is caused by Rhizoctonia solani. " +
				"Oval, water-soaked lesions with grey-white centres and brown borders form on leaf sheaths near the waterline and climb up the plant under dense canopies. " +
				"The fungus survives as sclerotia in soil and floats to new plants in irrigation water. " +
				"Wider spacing, moderate nitrogen and fungicides at maximum tillering limit the damage.",
		},
		{
			Keyword: "sheath rot",
			Name:    "Sheath Rot",
			Description: "Sheath Rot, caused by Sarocladium oryzae, attacks the uppermost leaf sheath that encloses the young panicle. " +
				"Lesions are irregular, brown-edged with grey centres, and severely infected panicles fail to emerge or emerge partially with sterile, discoloured grain. " +
				"Insect wounds, especially from stem borers and mites, open the way for infection. " +
				"Healthy seed, insect control and potash application lower the risk.",
		},
		{
			Keyword: "stem rot",
			Name:    "Stem Rot",
			Description: "Stem Rot, caused by Sclerotium oryzae, begins as small black lesions on the outer leaf sheath near the waterline and advances into the culm, which softens and lodges. " +
				"Tiny black sclerotia visible inside rotted stems survive in soil and stubble between seasons. " +
				"Burning or removing infected stubble, draining fields and potassium fertilisation reduce carry-over. " +
				"Lodged, rotted tillers produce chalky, unfilled grain.",
		},
		{
			Keyword: "tungro",
			Name:    "Rice Tungro",
			Description: "Rice Tungro Virus is a dual infection caused by Rice Tungro Bacilliform and Spherical Viruses, transmitted by green leafhoppers. " +
				"Infected plants show yellow to orange leaf discolouration starting from the tips, stunting and reduced tillering. " +
				"Tungro spreads fastest where staggered planting keeps leafhopper populations high. " +
				"Synchronous planting, vector management and resistant varieties are the core controls.",
		},
	}
}
