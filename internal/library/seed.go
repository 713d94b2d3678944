package library

// DefaultCatalog returns the built-in topic library.
func DefaultCatalog() *Catalog {
	return NewCatalog(seedTopics...)
}

var seedTopics = []Topic{
	{
		ID:          "t1",
		Title:       "심박출량(Cardiac Output)의 기전",
		Subject:     "생리학",
		Professor:   "김철수 교수",
		LastStudied: "2일 전",
		Mastery:     75,
		Tags:        []string{"심장", "순환기"},
		Notes: map[View]string{
			ViewSummary:   "심박출량(Cardiac Output) 요약 내용: CO = SV x HR...",
			ViewDetail:    "Guyton & Hall 생리학 교과서 상세 내용 발췌: 심장 조절 기전, Frank-Starling 법칙...",
			ViewSlides:    "강의 슬라이드 내용: Wiggers Diagram 및 심주기 설명...",
			ViewQuestions: "기출 문제 문맥: 전부하(Preload)와 후부하(Afterload) 관련 문제...",
		},
	},
	{
		ID:          "t2",
		Title:       "뇌신경(Cranial Nerves) V-VII",
		Subject:     "해부학",
		Professor:   "이영희 교수",
		LastStudied: "5일 전",
		Mastery:     40,
		Tags:        []string{"신경", "두경부"},
	},
	{
		ID:          "t3",
		Title:       "항생제 분류 및 작용기전",
		Subject:     "약리학",
		Professor:   "박준호 교수",
		LastStudied: "1주 전",
		Mastery:     90,
		Tags:        []string{"약물", "감염"},
	},
	{
		ID:          "t4",
		Title:       "신장 사구체 여과율(GFR)",
		Subject:     "생리학",
		Professor:   "김철수 교수",
		LastStudied: "학습 안 함",
		Mastery:     0,
		Tags:        []string{"신장"},
	},
	{
		ID:          "t5",
		Title:       "폐암의 종류와 병리",
		Subject:     "병리학",
		Professor:   "최민수 교수",
		LastStudied: "3일 전",
		Mastery:     60,
		Tags:        []string{"종양", "호흡기"},
	},
}
