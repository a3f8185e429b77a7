package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           BTC Guess Game API
// @version         0.1.0
// @description     Up/down price prediction game: guesses, resolution, and the cached BTC price feed.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
