package service

import "errors"

// 服務層的錯誤分類，handler 據此對應 HTTP 狀態碼
var (
	// 未認證
	ErrUnauthenticated = errors.New("未認證或認證已過期")

	// 資源不存在
	ErrRoomNotFound     = errors.New("房間不存在")
	ErrSessionNotFound  = errors.New("遊戲不存在")
	ErrQuestionNotFound = errors.New("題目不存在")

	// 權限不足
	ErrNotRoomHost = errors.New("只有房主可以執行此操作")
	ErrNotPlayer   = errors.New("用戶不是本場遊戲的玩家")

	// 狀態衝突
	ErrRoomFull        = errors.New("房間已滿")
	ErrAlreadyMember   = errors.New("用戶已在房間中")
	ErrSessionActive   = errors.New("房間已有進行中的遊戲")
	ErrSessionFinished = errors.New("遊戲已結束")
	ErrAlreadyAnswered = errors.New("該題已作答過")

	// 請求無效
	ErrInvalidChoice = errors.New("無效的選項索引")
)
