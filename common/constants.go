package common

var Version = "v0.3.1"
