// Package kvcache implements the persistent cache store on top of any
// driven.KeyValueStore.
//
// Two reserved keys hold the namespaces:
//
//	constitution_analysis_cache  JSON object, record title -> analysis
//	constitution_chat_history    JSON array of saved chats, newest first
//
// Storage failures never reach callers. A read that fails or finds corrupt
// JSON is treated as an empty namespace; a failed write is logged and dropped.
package kvcache
