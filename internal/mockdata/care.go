package mockdata

import "github.com/odyssey-erp/warroom/internal/org"

// BurnoutRisk flags overwork or insufficient rest between shifts.
type BurnoutRisk struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Dept     string `json:"dept"`
	Type     string `json:"type"`
	Value    string `json:"value"`
	Level    string `json:"level"`
	AvatarID int    `json:"avatar_id"`
}

// AbnormalSignal is a sudden change in leave or lateness frequency.
type AbnormalSignal struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Dept         string  `json:"dept"`
	Type         string  `json:"type"`
	CurrentCount int     `json:"current_count"`
	PrevAvg      float64 `json:"prev_avg"`
	Growth       string  `json:"growth"`
	AvatarID     int     `json:"avatar_id"`
}

// RetentionRisk is an attrition prediction for one employee.
type RetentionRisk struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Dept           string   `json:"dept"`
	Score          int      `json:"score"`
	Level          string   `json:"level"`
	KeyFactors     []string `json:"key_factors"`
	Recommendation string   `json:"recommendation"`
	AvatarID       int      `json:"avatar_id"`
}

// StressCell is one department of the stress heat map.
type StressCell struct {
	Name           string `json:"name"`
	Headcount      int    `json:"headcount"`
	Stress         string `json:"stress"`
	OvertimeDelta  string `json:"overtime_delta"`
	LeaveDeviation string `json:"leave_deviation"`
}

// Care backs the four care views.
type Care struct {
	HighRisk  bool             `json:"high_risk"`
	Retention []RetentionRisk  `json:"retention"`
	Burnout   []BurnoutRisk    `json:"burnout"`
	Abnormal  []AbnormalSignal `json:"abnormal"`
	Heatmap   []StressCell     `json:"heatmap"`
	Anomalies int              `json:"anomalies"`
}

var burnoutRisks = []BurnoutRisk{
	{ID: "001", Name: "王大明", Dept: "研發一部", Type: "Overwork", Value: "48.5 hours OT", Level: "Red", AvatarID: 11},
	{ID: "005", Name: "李小美", Dept: "業務一課", Type: "Overwork", Value: "38.0 hours OT", Level: "Yellow", AvatarID: 12},
	{ID: "022", Name: "張建國", Dept: "生產管理部", Type: "Rest Violation", Value: "9.0 hours rest", Level: "Red", AvatarID: 13},
	{ID: "045", Name: "陳志遠", Dept: "研發一部", Type: "Rest Violation", Value: "10.5 hours rest", Level: "Red", AvatarID: 14},
}

var abnormalSignals = []AbnormalSignal{
	{ID: "088", Name: "林志豪", Dept: "客服中心", Type: "Sudden Leave Spike", CurrentCount: 4, PrevAvg: 0.5, Growth: "+700%", AvatarID: 21},
	{ID: "102", Name: "張雅雯", Dept: "行銷企劃部", Type: "Lateness Spike", CurrentCount: 5, PrevAvg: 1.2, Growth: "+316%", AvatarID: 22},
	{ID: "056", Name: "許志安", Dept: "研發二部", Type: "Sudden Leave Spike", CurrentCount: 3, PrevAvg: 1.0, Growth: "+200%", AvatarID: 23},
}

var retentionRisks = []RetentionRisk{
	{
		ID: "R01", Name: "陳冠廷", Dept: "研發一部", Score: 88, Level: "High", AvatarID: 31,
		KeyFactors:     []string{"頻繁請短假 (週五 0.5天 x3)", "加班時數驟降 (-90% MoM)", "安靜離職跡象"},
		Recommendation: "高度疑似面試中，建議立即安排一對一留任訪談 (Stay Interview)。",
	},
	{
		ID: "R02", Name: "黃佳怡", Dept: "業務一課", Score: 75, Level: "High", AvatarID: 32,
		KeyFactors:     []string{"特休消耗速度異常 (近兩週 -5天)", "無長假計畫申請", "布拉德福德因子飆升"},
		Recommendation: "需確認是否為職業倦怠或準備離職清假，建議關懷工作負荷。",
	},
	{
		ID: "R03", Name: "林建忠", Dept: "客服中心", Score: 55, Level: "Medium", AvatarID: 33,
		KeyFactors:     []string{"遲到頻率增加 (本月 4次)", "午休打卡異常超時", "出勤紀律鬆散"},
		Recommendation: "工作敬業度下降，建議檢視是否對現有職務感到乏味。",
	},
}

var stressHeatmap = []StressCell{
	{Name: "研發一部", Headcount: 32, Stress: "Critical", OvertimeDelta: "+125%", LeaveDeviation: "+20%"},
	{Name: "客服中心", Headcount: 45, Stress: "High", OvertimeDelta: "+15%", LeaveDeviation: "+180%"},
	{Name: "業務一課", Headcount: 15, Stress: "High", OvertimeDelta: "+65%", LeaveDeviation: "+10%"},
	{Name: "行銷企劃", Headcount: 12, Stress: "Normal", OvertimeDelta: "-10%", LeaveDeviation: "+5%"},
	{Name: "管理部", Headcount: 10, Stress: "Normal", OvertimeDelta: "-40%", LeaveDeviation: "-15%"},
}

// BuildCare returns the care lists for unit. The heat map always covers
// every department.
func BuildCare(unit org.UnitID) Care {
	name := ""
	if d, ok := org.Lookup(unit); ok {
		name = d.Name
	}
	keep := func(dept string) bool { return unit == org.All || dept == name }

	out := Care{
		HighRisk: unit == org.All || unit == org.ManagedUnit,
		Heatmap:  stressHeatmap,
	}
	for _, r := range retentionRisks {
		if keep(r.Dept) {
			out.Retention = append(out.Retention, r)
		}
	}
	for _, r := range burnoutRisks {
		if keep(r.Dept) {
			out.Burnout = append(out.Burnout, r)
		}
	}
	for _, s := range abnormalSignals {
		if keep(s.Dept) {
			out.Abnormal = append(out.Abnormal, s)
		}
	}
	for _, c := range stressHeatmap {
		if c.Stress != "Normal" {
			out.Anomalies++
		}
	}
	return out
}
