package repository

// DemoCatalog returns the built-in sample sale used when no workbook has been
// uploaded: ten contemporary-art lots from a single auction.
func DemoCatalog() []LotRecord {
	return []LotRecord{
		{
			ID: 86, SaleNumber: "7185", WeightClass: WeightHeavy, Material: "Canvas",
			Description: "JEAN-MICHEL BASQUIAT (1960-1988)\nUntitled (Skull), 1981\nAcrylic and oil stick on canvas\n207.6 x 176.8 cm",
		},
		{
			ID: 87, SaleNumber: "7185", WeightClass: WeightMedium, Material: "Canvas",
			Description: "BANKSY (B. 1974)\nGirl with Balloon, 2006\nSpray paint on canvas\n150 x 150 cm",
		},
		{
			ID: 88, SaleNumber: "7185", WeightClass: WeightMedium, Material: "Canvas",
			Description: "YAYOI KUSAMA (B. 1929)\nPumpkin, 2015\nAcrylic on canvas\n162 x 162 cm",
		},
		{
			ID: 89, SaleNumber: "7185", WeightClass: WeightHeavy, Material: "Glass/Steel",
			Description: "DAMIEN HIRST (B. 1965)\nThe Physical Impossibility of Death, 1991\nGlass, steel, formaldehyde solution\n213 x 518 x 213 cm",
		},
		{
			ID: 90, SaleNumber: "7185", WeightClass: WeightHeavy, Material: "Metal",
			Description: "JEFF KOONS (B. 1955)\nBalloon Dog (Orange), 1994-2000\nMirror-polished stainless steel\n307.3 x 363.2 x 114.3 cm",
		},
		{
			ID: 91, SaleNumber: "7185", WeightClass: WeightMedium, Material: "Canvas",
			Description: "GERHARD RICHTER (B. 1932)\nAbstraktes Bild, 1986\nOil on canvas\n200 x 200 cm",
		},
		{
			ID: 92, SaleNumber: "7185", WeightClass: WeightHeavy, Material: "Canvas",
			Description: "TAKASHI MURAKAMI (B. 1962)\nFlower Ball (3D), 2008\nAcrylic on canvas mounted on board\nDiameter: 300 cm",
		},
		{
			ID: 93, SaleNumber: "7185", WeightClass: WeightLight, Material: "Photograph",
			Description: "CINDY SHERMAN (B. 1954)\nUntitled Film Still #21, 1978\nGelatin silver print\n20.3 x 25.4 cm",
		},
		{
			ID: 94, SaleNumber: "7185", WeightClass: WeightHeavy, Material: "Mixed media",
			Description: "ANSELM KIEFER (B. 1945)\nDie Meistersinger, 1981-1982\nOil, emulsion, straw on photograph mounted on canvas\n280 x 380 cm",
		},
		{
			ID: 95, SaleNumber: "7185", WeightClass: WeightMedium, Material: "Photograph",
			Description: "ANDREAS GURSKY (B. 1955)\nRhein II, 1999\nC-print mounted on acrylic glass\n190 x 360 cm",
		},
	}
}
