package model

import "time"

// 注文の更新、キャンセルなど。
type AuditAction string

const (
	//ステータス・備考を更新した操作。
	AuditActionUpdateOrder AuditAction = "UPDATE_ORDER"
	//注文をキャンセル（削除）した操作。
	AuditActionCancelOrder AuditAction = "CANCEL_ORDER"
	//在庫を調整した操作。
	AuditActionAdjustStock AuditAction = "ADJUST_STOCK"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceOrder   AuditResourceType = "order"
	AuditResourceProduct AuditResourceType = "product"
)

// 監査ログ。
// 「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	//リクエストID（ログとの突き合わせ用）
	RequestID string `gorm:"type:varchar(64)" json:"request_id"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
