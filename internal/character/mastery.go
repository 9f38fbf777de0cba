package character

// MasteryThreshold 是判定为"已掌握"所需的连续认识次数
const MasteryThreshold = 3

// Progress 是一个汉字的学习状态。
// 状态转换都返回新的值，不修改接收者。
type Progress struct {
	RecognitionCount int
	IsMastered       bool
}

// Mark 根据一次判定计算新的状态:
//   - 认识: 计数加一(不超过阈值)，达到阈值时标记为已掌握
//   - 不认识: 计数清零，已掌握标记保持不变
func (p Progress) Mark(recognized bool) Progress {
	if !recognized {
		p.RecognitionCount = 0
		return p
	}
	if p.RecognitionCount < MasteryThreshold {
		p.RecognitionCount++
	}
	if p.RecognitionCount >= MasteryThreshold {
		p.IsMastered = true
	}
	return p
}

// Reset 清除全部学习进度
func (p Progress) Reset() Progress {
	return Progress{}
}

// Clamp 把计数限制在 [0, MasteryThreshold] 内，用于导入外部数据
func (p Progress) Clamp() Progress {
	switch {
	case p.RecognitionCount < 0:
		p.RecognitionCount = 0
	case p.RecognitionCount > MasteryThreshold:
		p.RecognitionCount = MasteryThreshold
	}
	return p
}
