package seed

// Template is a starter checklist with its items.
type Template struct {
	Title string
	Icon  string
	Color string
	Items []ItemTemplate
}

// ItemTemplate is one starter item.
type ItemTemplate struct {
	Title       string
	Description string
	Icon        string
	IsDone      bool
	SubItems    []string
}

// GroupTitle, GroupIcon and GroupColor describe the group the templates are
// loaded into.
const (
	GroupTitle = "Camping Checklists"
	GroupIcon  = "camping"
	GroupColor = "#1d93c8"
)

// Templates are loaded in this order.
var Templates = []Template{
	{
		Title: "Camping Essentials",
		Icon:  "camping",
		Color: "#1d93c8",
		Items: []ItemTemplate{
			{Title: "Tent", Description: "Weatherproof tent with rainfly", Icon: "home",
				SubItems: []string{"Tent poles", "Rainfly", "Tent stakes", "Guy lines", "Footprint/ground cloth"}},
			{Title: "Sleeping Bag", Description: "Warm sleeping bag suitable for the season", Icon: "hotel",
				SubItems: []string{"Sleeping bag liner", "Compression sack", "Pillow"}},
			{Title: "Sleeping Pad", Description: "Inflatable or foam sleeping pad", Icon: "airline_seat_flat", IsDone: true,
				SubItems: []string{"Pump (if inflatable)", "Repair kit"}},
			{Title: "Camping Stove", Description: "Portable stove with fuel", Icon: "local_fire_department",
				SubItems: []string{"Fuel canisters", "Lighter", "Wind screen", "Pot holder"}},
			{Title: "Headlamp", Description: "LED headlamp with extra batteries", Icon: "light_mode",
				SubItems: []string{"Extra batteries", "Backup headlamp"}},
			{Title: "Camping Chairs", Description: "Portable folding chairs", Icon: "chair",
				SubItems: []string{"Camp table (optional)"}},
			{Title: "Lantern", Description: "Battery or solar-powered lantern", Icon: "lightbulb",
				SubItems: []string{"Extra batteries", "Solar panel (if solar)"}},
			{Title: "Tarp", Description: "Waterproof tarp for ground cover", Icon: "layers",
				SubItems: []string{"Rope", "Tarp stakes"}},
		},
	},
	{
		Title: "Cooking Supplies",
		Icon:  "restaurant",
		Color: "#f97316",
		Items: []ItemTemplate{
			{Title: "Cookware Set", Description: "Pots, pans, and utensils", Icon: "soup_kitchen",
				SubItems: []string{"Pot (2-3qt)", "Pan", "Spatula", "Serving spoon", "Tongs", "Pot gripper"}},
			{Title: "Cooler", Description: "Insulated cooler with ice packs", Icon: "ac_unit", IsDone: true,
				SubItems: []string{"Ice packs", "Ice", "Cooler thermometer"}},
			{Title: "Water Bottles", Description: "Reusable water bottles or hydration system", Icon: "water_drop",
				SubItems: []string{"Water filter", "Water purification tablets", "Hydration bladder"}},
			{Title: "Cutting Board", Description: "Portable cutting board", Icon: "content_cut",
				SubItems: []string{"Knife set", "Knife sharpener"}},
			{Title: "Coffee Maker", Description: "Portable coffee maker or French press", Icon: "local_cafe",
				SubItems: []string{"Coffee grounds", "Filters (if needed)", "Sugar", "Creamer"}},
			{Title: "Dish Soap", Description: "Biodegradable dish soap", Icon: "cleaning_services",
				SubItems: []string{"Sponge", "Dish towel", "Wash basin"}},
			{Title: "Matches/Lighter", Description: "Waterproof matches or lighter", Icon: "local_fire_department",
				SubItems: []string{"Fire starter", "Firewood"}},
		},
	},
	{
		Title: "Clothing",
		Icon:  "checkroom",
		Color: "#3b82f6",
		Items: []ItemTemplate{
			{Title: "Hiking Boots", Description: "Comfortable, waterproof hiking boots", Icon: "directions_walk",
				SubItems: []string{"Hiking socks", "Boot laces (extra)", "Boot waterproofing spray"}},
			{Title: "Rain Jacket", Description: "Waterproof rain jacket", Icon: "umbrella", IsDone: true,
				SubItems: []string{"Rain pants", "Pack cover"}},
			{Title: "Warm Layers", Description: "Fleece or wool layers for cold nights", Icon: "thermostat",
				SubItems: []string{"Fleece jacket", "Wool sweater", "Down vest"}},
			{Title: "Extra Socks", Description: "Multiple pairs of moisture-wicking socks", Icon: "inventory_2",
				SubItems: []string{"Wool socks (3-4 pairs)", "Liner socks"}},
			{Title: "Hat", Description: "Sun hat or beanie depending on weather", Icon: "checkroom",
				SubItems: []string{"Sun hat", "Beanie", "Buff/neck gaiter"}},
			{Title: "Swimwear", Description: "Swimsuit or swim trunks", Icon: "pool",
				SubItems: []string{"Quick-dry towel", "Water shoes"}},
		},
	},
	{
		Title: "Safety & First Aid",
		Icon:  "medical_services",
		Color: "#ec4899",
		Items: []ItemTemplate{
			{Title: "First Aid Kit", Description: "Complete first aid kit with bandages and medications", Icon: "medical_services",
				SubItems: []string{"Bandages", "Antiseptic wipes", "Pain relievers", "Antihistamine", "Tweezers", "Medical tape"}},
			{Title: "Whistle", Description: "Emergency whistle for signaling", Icon: "volume_up",
				SubItems: []string{"Signal mirror", "Emergency beacon"}},
			{Title: "Multi-tool", Description: "Swiss Army knife or multi-tool", Icon: "build", IsDone: true,
				SubItems: []string{"Pocket knife", "Duct tape"}},
			{Title: "Map & Compass", Description: "Topographic map and compass", Icon: "map",
				SubItems: []string{"GPS device", "Trail guide", "Compass (backup)"}},
			{Title: "Emergency Blanket", Description: "Space blanket for emergency warmth", Icon: "emergency",
				SubItems: []string{"Emergency shelter", "Hand warmers"}},
			{Title: "Flashlight", Description: "Extra flashlight with batteries", Icon: "flashlight_on",
				SubItems: []string{"Extra batteries", "Backup flashlight", "Glow sticks"}},
		},
	},
	{
		Title: "Vehicle & Tools",
		Icon:  "build",
		Color: "#6366f1",
		Items: []ItemTemplate{
			{Title: "Tire Repair Kit", Description: "Tire patch kit and air compressor", Icon: "build",
				SubItems: []string{"Tire patches", "Tire sealant", "Air compressor", "Tire pressure gauge"}},
			{Title: "Jumper Cables", Description: "Heavy-duty jumper cables", Icon: "cable",
				SubItems: []string{"Portable jump starter", "Battery terminals"}},
			{Title: "Tool Kit", Description: "Basic automotive tool kit", Icon: "construction",
				SubItems: []string{"Screwdrivers", "Wrenches", "Pliers", "Hammer"}},
			{Title: "Spare Tire", Description: "Check spare tire pressure", Icon: "tire_repair", IsDone: true,
				SubItems: []string{"Lug wrench", "Jack", "Wheel chocks"}},
			{Title: "Road Flares", Description: "Emergency road flares", Icon: "warning",
				SubItems: []string{"Reflective triangles", "Emergency vest"}},
			{Title: "GPS Device", Description: "GPS navigation device or app", Icon: "navigation",
				SubItems: []string{"GPS mount", "Offline maps", "Compass app"}},
		},
	},
}
