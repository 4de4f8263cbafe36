package application

// TransitionPolicy はステータス遷移の可否を判定します。
type TransitionPolicy interface {
	Allow(from, to Status) bool
}

// PermissivePolicy は任意の遷移を許可します。既に確定した応募の訂正にも使えます。
type PermissivePolicy struct{}

func (PermissivePolicy) Allow(Status, Status) bool {
	return true
}

// StrictPolicy は pending から accepted / rejected への遷移のみを許可します。
// 同じステータスへの更新は常に許可されます。
type StrictPolicy struct{}

func (StrictPolicy) Allow(from, to Status) bool {
	if from == to {
		return true
	}
	return from == StatusPending && (to == StatusAccepted || to == StatusRejected)
}

// PolicyFor は設定値に応じたポリシーを返します。
func PolicyFor(strict bool) TransitionPolicy {
	if strict {
		return StrictPolicy{}
	}
	return PermissivePolicy{}
}
