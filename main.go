package main

import "github.com/vibast-solutions/ms-go-store-subscriptions/cmd"

func main() {
	cmd.Execute()
}
