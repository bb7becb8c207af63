package places

// country pairs the name emitted into the corpus with the lookup forms
// that should resolve to it. Aliases are plain lowercase; historical and
// constituent names map to the present-day country. Bare "america" is
// deliberately absent ("South America" would hit it), as are two-letter
// abbreviations.
type country struct {
	name    string
	aliases []string
}

var countries = []country{
	{name: "Afghanistan", aliases: []string{"afghanistan"}},
	{name: "Albania", aliases: []string{"albania"}},
	{name: "Algeria", aliases: []string{"algeria"}},
	{name: "Argentina", aliases: []string{"argentina"}},
	{name: "Armenia", aliases: []string{"armenia"}},
	{name: "Australia", aliases: []string{"australia"}},
	{name: "Austria", aliases: []string{"austria"}},
	{name: "Azerbaijan", aliases: []string{"azerbaijan"}},
	{name: "Bahamas", aliases: []string{"bahamas"}},
	{name: "Bangladesh", aliases: []string{"bangladesh"}},
	{name: "Barbados", aliases: []string{"barbados"}},
	{name: "Belarus", aliases: []string{"belarus"}},
	{name: "Belgium", aliases: []string{"belgium"}},
	{name: "Bolivia", aliases: []string{"bolivia"}},
	{name: "Bosnia and Herzegovina", aliases: []string{"bosnia and herzegovina", "bosnia"}},
	{name: "Botswana", aliases: []string{"botswana"}},
	{name: "Brazil", aliases: []string{"brazil"}},
	{name: "Bulgaria", aliases: []string{"bulgaria"}},
	{name: "Cambodia", aliases: []string{"cambodia"}},
	{name: "Cameroon", aliases: []string{"cameroon"}},
	{name: "Canada", aliases: []string{"canada"}},
	{name: "Chad", aliases: []string{"chad"}},
	{name: "Chile", aliases: []string{"chile"}},
	{name: "China", aliases: []string{"china"}},
	{name: "Colombia", aliases: []string{"colombia"}},
	{name: "Costa Rica", aliases: []string{"costa rica"}},
	{name: "Croatia", aliases: []string{"croatia"}},
	{name: "Cuba", aliases: []string{"cuba"}},
	{name: "Cyprus", aliases: []string{"cyprus"}},
	{name: "Czech Republic", aliases: []string{"czech republic", "czechia", "bohemia"}},
	{name: "Democratic Republic of the Congo", aliases: []string{"democratic republic of the congo", "congo", "zaire"}},
	{name: "Denmark", aliases: []string{"denmark"}},
	{name: "Dominican Republic", aliases: []string{"dominican republic"}},
	{name: "Ecuador", aliases: []string{"ecuador"}},
	{name: "Egypt", aliases: []string{"egypt"}},
	{name: "El Salvador", aliases: []string{"el salvador"}},
	{name: "Estonia", aliases: []string{"estonia"}},
	{name: "Ethiopia", aliases: []string{"ethiopia", "abyssinia"}},
	{name: "Finland", aliases: []string{"finland"}},
	{name: "France", aliases: []string{"france"}},
	{name: "Georgia", aliases: []string{"georgia"}},
	{name: "Germany", aliases: []string{"germany", "prussia"}},
	{name: "Ghana", aliases: []string{"ghana"}},
	{name: "Greece", aliases: []string{"greece"}},
	{name: "Guatemala", aliases: []string{"guatemala"}},
	{name: "Haiti", aliases: []string{"haiti"}},
	{name: "Honduras", aliases: []string{"honduras"}},
	{name: "Hungary", aliases: []string{"hungary"}},
	{name: "Iceland", aliases: []string{"iceland"}},
	{name: "India", aliases: []string{"india"}},
	{name: "Indonesia", aliases: []string{"indonesia"}},
	{name: "Iran", aliases: []string{"iran", "persia"}},
	{name: "Iraq", aliases: []string{"iraq"}},
	{name: "Ireland", aliases: []string{"ireland"}},
	{name: "Israel", aliases: []string{"israel"}},
	{name: "Italy", aliases: []string{"italy"}},
	{name: "Jamaica", aliases: []string{"jamaica"}},
	{name: "Japan", aliases: []string{"japan"}},
	{name: "Jordan", aliases: []string{"jordan"}},
	{name: "Kazakhstan", aliases: []string{"kazakhstan"}},
	{name: "Kenya", aliases: []string{"kenya"}},
	{name: "Kuwait", aliases: []string{"kuwait"}},
	{name: "Laos", aliases: []string{"laos"}},
	{name: "Latvia", aliases: []string{"latvia"}},
	{name: "Lebanon", aliases: []string{"lebanon"}},
	{name: "Liberia", aliases: []string{"liberia"}},
	{name: "Libya", aliases: []string{"libya"}},
	{name: "Lithuania", aliases: []string{"lithuania"}},
	{name: "Luxembourg", aliases: []string{"luxembourg"}},
	{name: "Madagascar", aliases: []string{"madagascar"}},
	{name: "Malaysia", aliases: []string{"malaysia"}},
	{name: "Mali", aliases: []string{"mali"}},
	{name: "Malta", aliases: []string{"malta"}},
	{name: "Mexico", aliases: []string{"mexico"}},
	{name: "Monaco", aliases: []string{"monaco"}},
	{name: "Mongolia", aliases: []string{"mongolia"}},
	{name: "Morocco", aliases: []string{"morocco"}},
	{name: "Mozambique", aliases: []string{"mozambique"}},
	{name: "Myanmar", aliases: []string{"myanmar", "burma"}},
	{name: "Nepal", aliases: []string{"nepal"}},
	{name: "Netherlands", aliases: []string{"netherlands", "holland"}},
	{name: "New Zealand", aliases: []string{"new zealand"}},
	{name: "Nicaragua", aliases: []string{"nicaragua"}},
	{name: "Niger", aliases: []string{"niger"}},
	{name: "Nigeria", aliases: []string{"nigeria"}},
	{name: "North Korea", aliases: []string{"north korea"}},
	{name: "Norway", aliases: []string{"norway"}},
	{name: "Oman", aliases: []string{"oman"}},
	{name: "Pakistan", aliases: []string{"pakistan"}},
	{name: "Panama", aliases: []string{"panama"}},
	{name: "Papua New Guinea", aliases: []string{"papua new guinea"}},
	{name: "Paraguay", aliases: []string{"paraguay"}},
	{name: "Peru", aliases: []string{"peru"}},
	{name: "Philippines", aliases: []string{"philippines"}},
	{name: "Poland", aliases: []string{"poland"}},
	{name: "Portugal", aliases: []string{"portugal"}},
	{name: "Qatar", aliases: []string{"qatar"}},
	{name: "Romania", aliases: []string{"romania"}},
	{name: "Russia", aliases: []string{"russia", "soviet union", "ussr"}},
	{name: "Rwanda", aliases: []string{"rwanda"}},
	{name: "Saudi Arabia", aliases: []string{"saudi arabia", "arabia"}},
	{name: "Senegal", aliases: []string{"senegal"}},
	{name: "Serbia", aliases: []string{"serbia"}},
	{name: "Sierra Leone", aliases: []string{"sierra leone"}},
	{name: "Singapore", aliases: []string{"singapore"}},
	{name: "Slovakia", aliases: []string{"slovakia"}},
	{name: "Slovenia", aliases: []string{"slovenia"}},
	{name: "Somalia", aliases: []string{"somalia"}},
	{name: "South Africa", aliases: []string{"south africa"}},
	{name: "South Korea", aliases: []string{"south korea", "korea"}},
	{name: "Spain", aliases: []string{"spain"}},
	{name: "Sri Lanka", aliases: []string{"sri lanka", "ceylon"}},
	{name: "Sudan", aliases: []string{"sudan"}},
	{name: "Sweden", aliases: []string{"sweden"}},
	{name: "Switzerland", aliases: []string{"switzerland"}},
	{name: "Syria", aliases: []string{"syria"}},
	{name: "Taiwan", aliases: []string{"taiwan"}},
	{name: "Tanzania", aliases: []string{"tanzania"}},
	{name: "Thailand", aliases: []string{"thailand", "siam"}},
	{name: "Tunisia", aliases: []string{"tunisia"}},
	{name: "Turkey", aliases: []string{"turkey"}},
	{name: "Uganda", aliases: []string{"uganda"}},
	{name: "Ukraine", aliases: []string{"ukraine"}},
	{name: "United Arab Emirates", aliases: []string{"united arab emirates"}},
	{name: "United Kingdom", aliases: []string{"united kingdom", "great britain", "britain", "england", "scotland", "wales"}},
	{name: "United States", aliases: []string{"united states", "united states of america", "usa", "u s a"}},
	{name: "Uruguay", aliases: []string{"uruguay"}},
	{name: "Uzbekistan", aliases: []string{"uzbekistan"}},
	{name: "Venezuela", aliases: []string{"venezuela"}},
	{name: "Vietnam", aliases: []string{"vietnam"}},
	{name: "Yemen", aliases: []string{"yemen"}},
	{name: "Zambia", aliases: []string{"zambia"}},
	{name: "Zimbabwe", aliases: []string{"zimbabwe"}},
}
