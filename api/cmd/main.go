package main

import (
	api "Pickme/api"
)

func main() {
	api.Run()
}
