// Package services holds the application logic behind the driving ports:
// search over the content snapshot, assistant turns and saved chats,
// cached article analysis, narration and settings.
//
// Everything a service touches outside the process arrives as a driven
// port, so tests run against the memory adapters and stubs.
package services
