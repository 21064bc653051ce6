// Package mcp_stdio exposes stack status as MCP tools over stdio so
// external agents can query the same composed snapshots as the CLI.
package mcp_stdio

import (
	"context"
	"encoding/json"

	"github.com/avatarneil/stack-status/internal/application"
	"github.com/avatarneil/stack-status/internal/domain"
	"github.com/avatarneil/stack-status/internal/infrastructure/gh_cli"
	"github.com/avatarneil/stack-status/internal/infrastructure/gt_cli"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type Server struct {
	composer *application.Composer
	gt       *gt_cli.Client
	gh       *gh_cli.Client
	version  string
}

func New(composer *application.Composer, gt *gt_cli.Client, gh *gh_cli.Client, version string) *Server {
	return &Server{composer: composer, gt: gt, gh: gh, version: version}
}

// Serve blocks handling MCP requests on stdin/stdout until EOF.
func (s *Server) Serve() error {
	srv := server.NewMCPServer("stack-status", s.version,
		server.WithInstructions("Get stack status and CI check progress. Use get_stack_status for the full stack view, get_pr_checks for specific branch details."),
	)

	srv.AddTool(mcp.NewTool("get_stack_status",
		mcp.WithDescription("Get the current stack status including CI check progress for all PRs in the stack"),
	), s.getStackStatus)

	srv.AddTool(mcp.NewTool("get_pr_checks",
		mcp.WithDescription("Get detailed CI check status for a specific branch or PR"),
		mcp.WithString("branch",
			mcp.Required(),
			mcp.Description("The branch name to get checks for"),
		),
	), s.getPRChecks)

	srv.AddTool(mcp.NewTool("get_branch_info",
		mcp.WithDescription("Get information about the current git branch including PR status"),
	), s.getBranchInfo)

	return server.ServeStdio(srv)
}

func (s *Server) getStackStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.composer.Compose(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}

func (s *Server) getPRChecks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	branch, err := req.RequireString("branch")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !s.gh.Installed(ctx) {
		return mcp.NewToolResultError("GitHub CLI (gh) not installed"), nil
	}

	checks, err := s.gh.Checks(ctx, branch)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	summary := domain.Summarize(checks)

	var pr *int64
	if n, ok := s.gh.ResolvePR(ctx, branch); ok {
		pr = &n
	}
	var prURL *string
	if u := s.gh.PRURL(ctx, branch); u != "" {
		prURL = &u
	}

	return jsonResult(struct {
		Branch  string              `json:"branch"`
		PR      *int64              `json:"pr"`
		PRURL   *string             `json:"pr_url"`
		Checks  []domain.Check      `json:"checks"`
		Summary domain.CheckSummary `json:"summary"`
	}{branch, pr, prURL, checks, summary})
}

func (s *Server) getBranchInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	current, err := s.gt.CurrentBranch(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	hasGh := s.gh.Installed(ctx)
	var pr *int64
	var prURL *string
	if hasGh {
		if n, ok := s.gh.ResolvePR(ctx, current); ok {
			pr = &n
		}
		if u := s.gh.PRURL(ctx, current); u != "" {
			prURL = &u
		}
	}

	return jsonResult(struct {
		Branch             string  `json:"branch"`
		PR                 *int64  `json:"pr"`
		PRURL              *string `json:"pr_url"`
		GraphiteInstalled  bool    `json:"graphite_installed"`
		GitHubCLIInstalled bool    `json:"github_cli_installed"`
	}{current, pr, prURL, s.gt.Installed(ctx), hasGh})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
