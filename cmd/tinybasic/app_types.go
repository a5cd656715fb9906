package main

import bruntime "github.com/gosuda/tinybasic/runtime"

type appConfig struct {
	plain   bool
	quiet   bool
	noColor bool
	script  string
	inputs  []string
}

type evalOutputMsg struct {
	out bruntime.Output
}

type evalDoneMsg struct {
	err error
}

type evalInputResp struct {
	value string
	err   error
}

type evalPromptMsg struct {
	req  bruntime.InputRequest
	resp chan evalInputResp
}

type evalPollMsg struct{}

type pendingInput struct {
	req  bruntime.InputRequest
	resp chan evalInputResp
}
