// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 這個包包含了在請求到達業務邏輯前執行的跨請求功能，
// 目前主要是透過身份提供者驗證 bearer token 的認證中間件。
package middleware
