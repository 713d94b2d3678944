package library

// WeakThreshold is the score below which a subject counts as weak.
const WeakThreshold = 50

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ReviewItem is an entry of the dashboard review queue. Due is a display
// label; no schedule is computed.
type ReviewItem struct {
	TopicID  string
	Title    string
	Due      string
	Priority Priority
}

// SubjectScore is a subject's achievement score, 0-100.
type SubjectScore struct {
	Subject string
	Score   int
}

func (s SubjectScore) Weak() bool {
	return s.Score < WeakThreshold
}

func ReviewQueue() []ReviewItem {
	return []ReviewItem{
		{TopicID: "t1", Title: "심박출량(Cardiac Output)의 기전", Due: "오늘", Priority: PriorityHigh},
		{TopicID: "t2", Title: "뇌신경(Cranial Nerves) V-VII", Due: "오늘", Priority: PriorityMedium},
		{TopicID: "t3", Title: "항생제 분류 및 작용기전", Due: "어제", Priority: PriorityHigh},
	}
}

func SubjectScores() []SubjectScore {
	return []SubjectScore{
		{Subject: "생리학", Score: 45},
		{Subject: "해부학", Score: 72},
		{Subject: "병리학", Score: 38},
		{Subject: "약리학", Score: 65},
		{Subject: "미생물학", Score: 55},
	}
}

// WeakSubjects lists subjects scoring below WeakThreshold in SubjectScores
// order.
func WeakSubjects() []string {
	var out []string
	for _, s := range SubjectScores() {
		if s.Weak() {
			out = append(out, s.Subject)
		}
	}
	return out
}
