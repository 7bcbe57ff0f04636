// Package gfx provides a small software graphics device with a fixed-function contract.
//
// The device follows the classic immediate-mode model: set render states and transforms, bind a
// vertex buffer, issue draw calls between BeginScene and EndScene, then Present. Vertices use the
// left-handed, row-vector convention (v' = v * World * View * Projection).
//
// Pipeline (fixed):
//
//	Vertex buffer → World/View/Projection → Trivial clip → Cull → Rasterization → Back buffer → Present.
//
// The back buffer is 16-bit RGB565. Present copies it into the hal framebuffer.
//
// Devices can be lost. A display mode change or a minimized window puts the device in the lost
// state; resources created in PoolDefault must be released before Reset succeeds.
package gfx
