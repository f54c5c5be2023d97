package repository

import (
	"time"

	"github.com/perfpulse/perfpulse-go/internal/model"
)

// SeedScoringCriteria returns the stock contribution categories and their
// base point values.
func SeedScoringCriteria() []model.ScoringCriteria {
	return []model.ScoringCriteria{
		{ID: "1", Category: "代码提交", Description: "提交高质量的代码到仓库", BasePoints: 10, Weight: 1.0},
		{ID: "2", Category: "代码审查", Description: "对他人代码进行有效审查", BasePoints: 5, Weight: 0.8},
		{ID: "3", Category: "文档贡献", Description: "编写或更新项目文档", BasePoints: 8, Weight: 0.7},
		{ID: "4", Category: "问题解决", Description: "解决项目中的bug或技术问题", BasePoints: 15, Weight: 1.2},
		{ID: "5", Category: "知识分享", Description: "分享技术文章或举办培训", BasePoints: 20, Weight: 1.5},
	}
}

// SeedScoringFactors returns the stock score-calculator inputs.
func SeedScoringFactors() []model.ScoringFactor {
	return []model.ScoringFactor{
		{
			ID: "1", Label: "代码质量", Description: "代码的质量和可维护性", Type: "select",
			Options: []model.FactorOption{
				{Label: "低", Value: "low"},
				{Label: "中", Value: "medium"},
				{Label: "高", Value: "high"},
			},
		},
		{ID: "2", Label: "完成时间", Description: "任务完成所需的时间", Type: "number", Min: 1, Max: 100},
		{
			ID: "3", Label: "创新程度", Description: "解决方案的创新程度", Type: "select",
			Options: []model.FactorOption{
				{Label: "常规", Value: "standard"},
				{Label: "改进", Value: "improved"},
				{Label: "创新", Value: "innovative"},
			},
		},
		{ID: "4", Label: "团队协作", Description: "是否促进了团队协作", Type: "checkbox"},
	}
}

// SeedRewards returns the stock reward catalog.
func SeedRewards() []model.Reward {
	created := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	rewards := []model.Reward{
		{ID: "1", Name: "额外休假日", Description: "获得一天带薪休假", Cost: 750, Icon: "gift", Likes: 85},
		{ID: "2", Name: "专业发展基金", Description: "获得用于专业发展的资金支持", Cost: 1000, Icon: "award", Likes: 92},
		{ID: "3", Name: "技术书籍补贴", Description: "获得用于购买专业技术书籍的补贴", Cost: 650, Icon: "trophy", Likes: 78},
		{ID: "4", Name: "健身房会员", Description: "一个月的健身房会员资格", Cost: 450, Icon: "gift", Likes: 65},
		{ID: "5", Name: "京东购物卡", Description: "获得价值200元的京东电子购物卡", Cost: 500, Icon: "gift", Likes: 88},
		{ID: "6", Name: "硬件设备补贴", Description: "获得用于购买笔记本电脑、显示器等工作设备的补贴", Cost: 800, Icon: "gift", Likes: 76},
		{ID: "7", Name: "智能办公设备", Description: "获得智能办公设备（如智能音箱、智能灯等）", Cost: 600, Icon: "gift", Likes: 70},
	}
	for i := range rewards {
		rewards[i].Available = true
		rewards[i].CreatedAt = created.Add(time.Duration(i) * time.Hour)
	}
	return rewards
}

// SeedActivities returns a few recent governance activities.
func SeedActivities() []model.Activity {
	return []model.Activity{
		{
			ID: "a1", Title: "算法公平性评估", Description: "对推荐算法进行公平性评估并输出报告",
			Points: 15, Status: "completed",
			CreatedAt: time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID: "a2", Title: "AI伦理研讨会", Description: "组织AI伦理研讨会，分享最新的伦理准则",
			Points: 10, Status: "completed",
			CreatedAt: time.Date(2023, 6, 12, 15, 45, 0, 0, time.UTC),
		},
		{
			ID: "a3", Title: "数据隐私专项", Description: "协调多部门共同解决数据隐私问题",
			Points: 12, Status: "ongoing",
			CreatedAt: time.Date(2023, 6, 10, 9, 15, 0, 0, time.UTC),
		},
	}
}
