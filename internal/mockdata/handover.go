package mockdata

// HandoverTask is an item the deputy takes over.
type HandoverTask struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Handover is an active deputy assignment.
type Handover struct {
	Status    string         `json:"status"`
	Until     string         `json:"until"`
	Applicant string         `json:"applicant"`
	Deputy    string         `json:"deputy"`
	Tasks     []HandoverTask `json:"tasks"`
}

// BuildHandover returns the current handover card.
func BuildHandover() Handover {
	return Handover{
		Status:    "請假中",
		Until:     "5/24 (週五)",
		Applicant: "陳大衛",
		Deputy:    "王小明",
		Tasks: []HandoverTask{
			{Title: "客戶 A 報價單審核 (已完成)", Done: true},
			{Title: "週三例會主持代理 (未確認)", Done: false},
		},
	}
}
