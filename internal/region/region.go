// Package region implements the cascading province, city and district
// selector shown on the home page.
package region

// Option is one selectable entry.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AllCitiesID is the city id used by provinces without a city breakdown.
const AllCitiesID = "all"

// NoSelectionLabel is shown when nothing is selected.
const NoSelectionLabel = "위치를 선택해주세요"

// Directory holds the region tree. District lists are keyed by
// "<province>_<city>" or, failing that, by the city id alone.
type Directory struct {
	Provinces []Option
	Cities    map[string][]Option
	Districts map[string][]Option
}

// Default returns the built-in region tree.
func Default() *Directory {
	return &Directory{
		Provinces: []Option{
			{ID: "seoul", Name: "서울"},
			{ID: "gyeonggi", Name: "경기"},
			{ID: "busan", Name: "부산"},
			{ID: "jeju", Name: "제주"},
		},
		Cities: map[string][]Option{
			"seoul": {{ID: AllCitiesID, Name: "전체"}},
			"gyeonggi": {
				{ID: "suwon", Name: "수원시"},
				{ID: "seongnam", Name: "성남시"},
				{ID: "yongin", Name: "용인시"},
			},
			"busan": {{ID: AllCitiesID, Name: "전체"}},
			"jeju": {
				{ID: "jeju_city", Name: "제주시"},
				{ID: "seogwipo", Name: "서귀포시"},
			},
		},
		Districts: map[string][]Option{
			"seoul_all": {
				{ID: "gangnam", Name: "강남구"},
				{ID: "mapo", Name: "마포구"},
				{ID: "jongno", Name: "종로구"},
				{ID: "yongsan", Name: "용산구"},
			},
			"suwon": {
				{ID: "paldal", Name: "팔달구"},
				{ID: "yeongtong", Name: "영통구"},
			},
			"seongnam": {
				{ID: "bundang", Name: "분당구"},
				{ID: "sujeong", Name: "수정구"},
			},
			"yongin": {
				{ID: "suji", Name: "수지구"},
				{ID: "giheung", Name: "기흥구"},
			},
			"jeju_city": {
				{ID: "jeju_downtown", Name: "제주시내"},
				{ID: "jocheon", Name: "조천읍"},
			},
			"seogwipo": {
				{ID: "seogwipo_downtown", Name: "서귀포시내"},
				{ID: "namwon", Name: "남원읍"},
			},
		},
	}
}

// Selection is the current cascade state. Empty strings mean unselected.
type Selection struct {
	Province string `json:"province,omitempty" form:"province"`
	City     string `json:"city,omitempty" form:"city"`
	District string `json:"district,omitempty" form:"district"`
}

// SelectProvince starts a new selection; city and district are cleared.
func (s Selection) SelectProvince(id string) Selection {
	return Selection{Province: id}
}

// SelectCity keeps the province and clears the district.
func (s Selection) SelectCity(id string) Selection {
	return Selection{Province: s.Province, City: id}
}

// SelectDistrict keeps province and city.
func (s Selection) SelectDistrict(id string) Selection {
	s.District = id
	return s
}

// CitiesOf returns the cities of a province, or nil when none is selected.
func (d *Directory) CitiesOf(province string) []Option {
	if province == "" {
		return nil
	}
	return d.Cities[province]
}

// DistrictsOf returns the districts for a province/city pair.
func (d *Directory) DistrictsOf(province, city string) []Option {
	if province == "" || city == "" {
		return nil
	}
	if list, ok := d.Districts[province+"_"+city]; ok {
		return list
	}
	return d.Districts[city]
}

// Label renders the human-readable location for a selection. Parts that
// resolve to an empty name are skipped, so an "all" city does not leave a
// double space.
func (d *Directory) Label(s Selection) string {
	province := nameOf(d.Provinces, s.Province)

	switch {
	case s.District != "":
		city := ""
		if s.City != AllCitiesID {
			city = nameOf(d.CitiesOf(s.Province), s.City)
		}
		district := nameOf(d.DistrictsOf(s.Province, s.City), s.District)
		return join(province, city, district)
	case s.City != "":
		return join(province, nameOf(d.CitiesOf(s.Province), s.City))
	case s.Province != "":
		return province
	default:
		return NoSelectionLabel
	}
}

// View is the selector's full state for rendering.
type View struct {
	Selection Selection `json:"selection"`
	Label     string    `json:"label"`
	Provinces []Option  `json:"provinces"`
	Cities    []Option  `json:"cities"`
	Districts []Option  `json:"districts"`
}

// ViewOf resolves the options available at each level of s.
func (d *Directory) ViewOf(s Selection) View {
	return View{
		Selection: s,
		Label:     d.Label(s),
		Provinces: d.Provinces,
		Cities:    orEmpty(d.CitiesOf(s.Province)),
		Districts: orEmpty(d.DistrictsOf(s.Province, s.City)),
	}
}

func nameOf(options []Option, id string) string {
	for _, o := range options {
		if o.ID == id {
			return o.Name
		}
	}
	return ""
}

func join(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}

func orEmpty(options []Option) []Option {
	if options == nil {
		return []Option{}
	}
	return options
}
