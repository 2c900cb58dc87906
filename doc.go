// Package main provides the entry point of GoUserAdmin, a small user management
// system. Users belong to groups and groups carry permissions. A REST API built
// on fiber and gorm owns the database, and a server-rendered front-end manages
// users through that API.
//
// Run "go-user-admin api" and "go-user-admin web" to start both servers,
// "go-user-admin migrate" to prepare the database only.
package main
