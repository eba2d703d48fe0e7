// Package dto はadvisorフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// AdviceReq は/advisor/adviceエンドポイントのリクエストボディを表します。
// Historyは直近の会話コンテキスト（クライアントが整形したテキスト）です。
type AdviceReq struct {
	Query   string `json:"query" binding:"required"`
	History string `json:"history"`
}

// AdviceRes はアドバイス生成のレスポンスです。
type AdviceRes struct {
	Text string `json:"text"`
}

// VoiceReq は/advisor/voiceエンドポイントのリクエストボディを表します。
// 音声認識（外部機能）が生成した文字起こしテキストを受け取ります。
type VoiceReq struct {
	Transcript string `json:"transcript" binding:"required"`
}
