package catalog

// CarOption is picker data for the caller's vehicle selector. It is
// never validated against the mod catalog.
type CarOption struct {
	Make   string
	Models []string
}

var carOptions = []CarOption{
	{Make: "Audi", Models: []string{"A3", "S3", "RS3", "A4", "S4", "RS4", "A5", "S5", "RS5", "A6", "S6", "RS6", "A7", "S7", "RS7", "Q3", "Q5", "Q7", "Q8", "TT", "TTS", "TT RS"}},
	{Make: "BMW", Models: []string{"2 Series", "M2", "3 Series", "M3", "4 Series", "M4", "5 Series", "M5", "7 Series", "X1", "X3", "X3 M", "X5", "X5 M", "Z4"}},
	{Make: "Mercedes-Benz", Models: []string{"A-Class", "CLA", "C-Class", "C43", "C63", "E-Class", "E53", "E63", "S-Class", "GLA", "GLC", "GLE", "AMG GT"}},
	{Make: "Volkswagen", Models: []string{"Golf", "GTI", "Golf R", "Jetta", "GLI", "Passat", "Tiguan", "Atlas"}},
	{Make: "Honda", Models: []string{"Civic", "Civic Si", "Civic Type R", "Accord", "Integra", "CR-V", "HR-V"}},
	{Make: "Toyota", Models: []string{"Corolla", "Corolla Hatchback", "Camry", "Camry TRD", "GR86", "Supra", "RAV4", "RAV4 Prime", "Tacoma", "Tundra", "4Runner"}},
	{Make: "Nissan", Models: []string{"Altima", "Maxima", "Sentra SR", "370Z", "400Z", "GT-R", "Rogue"}},
	{Make: "Subaru", Models: []string{"Impreza", "WRX", "WRX STI", "BRZ", "Forester", "Outback"}},
	{Make: "Hyundai", Models: []string{"Elantra", "Elantra N", "Sonata", "Sonata N Line", "Veloster N", "Kona", "Kona N", "Tucson"}},
	{Make: "Kia", Models: []string{"Forte GT", "Stinger", "K5 GT", "Soul", "Seltos", "Sportage"}},
	{Make: "Ford", Models: []string{"Mustang", "Mustang GT", "Shelby GT350", "Shelby GT500", "Focus ST", "Focus RS", "Fiesta ST", "F-150", "F-150 Raptor", "Bronco"}},
	{Make: "Chevrolet", Models: []string{"Camaro", "Camaro SS", "Camaro ZL1", "Corvette Stingray", "Corvette Z06", "Malibu", "Silverado", "Trailblazer"}},
	{Make: "Dodge", Models: []string{"Charger", "Charger Scat Pack", "Charger Hellcat", "Challenger", "Challenger Scat Pack", "Challenger Hellcat", "Durango", "Durango SRT"}},
	{Make: "Jeep", Models: []string{"Wrangler", "Wrangler Rubicon", "Gladiator", "Grand Cherokee", "Grand Cherokee SRT", "Cherokee"}},
	{Make: "Mazda", Models: []string{"Mazda3", "Mazda6", "MX-5 Miata", "CX-30", "CX-5", "CX-50"}},
	{Make: "Lexus", Models: []string{"IS 300", "IS 350", "IS 500", "RC 350", "RC F", "GS 350", "RX 350", "NX 350"}},
	{Make: "Infiniti", Models: []string{"Q50", "Q50 Red Sport", "Q60", "QX50"}},
	{Make: "Acura", Models: []string{"Integra", "TLX", "TLX Type S", "ILX", "RDX", "MDX"}},
	{Make: "Tesla", Models: []string{"Model 3", "Model Y", "Model S", "Model X"}},
	{Make: "Porsche", Models: []string{"911 Carrera", "911 Turbo", "911 GT3", "Cayman", "Cayman GT4", "Boxster", "Panamera", "Macan", "Cayenne"}},
}

func CarOptions() []CarOption {
	out := make([]CarOption, 0, len(carOptions))
	for _, opt := range carOptions {
		opt.Models = append([]string(nil), opt.Models...)
		out = append(out, opt)
	}
	return out
}

// Years returns the selectable model years, newest first.
func Years() []int {
	const newest, oldest = 2025, 1990
	out := make([]int, 0, newest-oldest+1)
	for y := newest; y >= oldest; y-- {
		out = append(out, y)
	}
	return out
}
